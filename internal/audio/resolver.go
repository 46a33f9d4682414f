// Package audio resolves pre-recorded pronunciation clips hosted on a
// static file server and generates missing word audio on demand.
package audio

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"
)

const (
	maxProbeWorkers   = 16
	probeTimeout      = 5 * time.Second
	maxKeysPerRequest = 200
)

var unsafeKeyChars = regexp.MustCompile(`[^a-z0-9_-]`)

// ToSafeKey converts a word or sentence ID into the storage key form
// used for audio filenames.
func ToSafeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	return unsafeKeyChars.ReplaceAllString(s, "")
}

// Clip describes the resolution result for a single key.
type Clip struct {
	Exists bool   `json:"exists"`
	URL    string `json:"url"`
}

// Resolver checks which audio clips exist on the storage host.
type Resolver struct {
	baseURL string
	client  *http.Client
}

// NewResolver creates a resolver against the given storage base URL.
// An empty base URL disables resolution; every key reports missing.
func NewResolver(baseURL string) *Resolver {
	return &Resolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: probeTimeout},
	}
}

// Enabled reports whether a storage host is configured.
func (r *Resolver) Enabled() bool {
	return r.baseURL != ""
}

// ResolveWords checks word pronunciation clips, keyed by the original
// word. Clip files live under /words/<safe>.mp3.
func (r *Resolver) ResolveWords(ctx context.Context, words []string) map[string]Clip {
	return r.resolve(ctx, words, "words")
}

// ResolveSentences checks sentence clips by ID, under /sentences/<safe>.mp3.
func (r *Resolver) ResolveSentences(ctx context.Context, ids []string) map[string]Clip {
	return r.resolve(ctx, ids, "sentences")
}

func (r *Resolver) resolve(ctx context.Context, keys []string, dir string) map[string]Clip {
	if len(keys) > maxKeysPerRequest {
		keys = keys[:maxKeysPerRequest]
	}

	results := make(map[string]Clip, len(keys))
	if !r.Enabled() {
		for _, k := range keys {
			results[k] = Clip{}
		}
		return results
	}

	type probe struct {
		key string
		url string
	}

	jobs := make(chan probe)
	var mu sync.Mutex
	var wg sync.WaitGroup

	workers := maxProbeWorkers
	if len(keys) < workers {
		workers = len(keys)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				exists := r.exists(ctx, p.url)
				mu.Lock()
				if exists {
					results[p.key] = Clip{Exists: true, URL: p.url}
				} else {
					results[p.key] = Clip{}
				}
				mu.Unlock()
			}
		}()
	}

	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		safe := ToSafeKey(k)
		if safe == "" {
			mu.Lock()
			results[k] = Clip{}
			mu.Unlock()
			continue
		}
		jobs <- probe{key: k, url: fmt.Sprintf("%s/%s/%s.mp3", r.baseURL, dir, safe)}
	}
	close(jobs)
	wg.Wait()

	return results
}

func (r *Resolver) exists(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
