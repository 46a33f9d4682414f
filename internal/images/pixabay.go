package images

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const pixabayAPIURL = "https://pixabay.com/api/"

// SearchResult is the response shape shared with the frontend image
// proxy: the first hit plus the full URL list.
type SearchResult struct {
	Image  string   `json:"image"`
	Images []string `json:"images"`
}

// PixabayClient queries the Pixabay image search API. Calls are rate
// limited so bulk worksheet renders cannot flood the upstream quota.
type PixabayClient struct {
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewPixabayClient creates a client for the given API key. The key may
// be empty, in which case every search fails and slots degrade to
// emoji/blank candidates.
func NewPixabayClient(apiKey string) *PixabayClient {
	return &PixabayClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(5), 10),
	}
}

// SearchOptions mirror the query parameters the frontend may pass
// through to the proxy endpoint.
type SearchOptions struct {
	ImageType   string // "all", "photo", "illustration", "vector"
	ContentType string // "ai" for AI-generated content
	Order       string
	SafeSearch  bool
	PerPage     int
	Page        int // 0 means a random page 1-5 for variety
}

// Search runs an image search and returns the hit URLs.
func (c *PixabayClient) Search(ctx context.Context, query string, opts SearchOptions) (*SearchResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("pixabay API key not configured")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if opts.ImageType == "" {
		opts.ImageType = "photo"
	}
	if opts.Order == "" {
		opts.Order = "popular"
	}
	if opts.PerPage <= 0 {
		opts.PerPage = 5
	}
	page := opts.Page
	if page <= 0 {
		// Light randomness so repeated searches surface new images.
		page = rand.Intn(5) + 1
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", query)
	params.Set("image_type", opts.ImageType)
	params.Set("per_page", strconv.Itoa(opts.PerPage))
	params.Set("safesearch", strconv.FormatBool(opts.SafeSearch))
	params.Set("order", opts.Order)
	params.Set("page", strconv.Itoa(page))
	if opts.ContentType != "" {
		params.Set("content_type", opts.ContentType)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pixabayAPIURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pixabay fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pixabay HTTP %d", resp.StatusCode)
	}

	var payload struct {
		Hits []struct {
			WebformatURL string `json:"webformatURL"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode pixabay response: %w", err)
	}

	result := &SearchResult{}
	for _, hit := range payload.Hits {
		if hit.WebformatURL != "" {
			result.Images = append(result.Images, hit.WebformatURL)
		}
	}
	if len(result.Images) > 0 {
		result.Image = result.Images[0]
	}
	return result, nil
}

// FirstImage returns the single best hit for a word, used when filling
// a slot's default alternatives.
func (c *PixabayClient) FirstImage(ctx context.Context, query string) (string, error) {
	result, err := c.Search(ctx, query, SearchOptions{SafeSearch: true, PerPage: 3})
	if err != nil {
		return "", err
	}
	if result.Image == "" {
		return "", fmt.Errorf("no image found for %q", query)
	}
	return result.Image, nil
}
