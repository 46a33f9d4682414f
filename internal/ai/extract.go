// Package ai extracts vocabulary word lists from reading passages
// using a chat-completions endpoint behind a proxy.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"englisharcade/internal/models"
)

const extractTimeout = 60 * time.Second

// Difficulty selects how hard the extracted vocabulary should be.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var difficultyPrompts = map[Difficulty]string{
	DifficultyEasy:   "Pick the simplest, most common words a beginner should learn first.",
	DifficultyMedium: "Pick words of moderate difficulty that an intermediate student may not know.",
	DifficultyHard:   "Pick the hardest, least common words, including phrasal verbs and idioms.",
}

// Extractor calls a chat-completions API through a proxy to turn a
// passage into English/Korean word pairs.
type Extractor struct {
	proxyURL string
	apiKey   string
	client   *http.Client
}

// NewExtractor creates an extractor. An empty proxyURL disables it.
func NewExtractor(proxyURL, apiKey string) *Extractor {
	return &Extractor{
		proxyURL: strings.TrimRight(proxyURL, "/"),
		apiKey:   apiKey,
		client:   &http.Client{Timeout: extractTimeout},
	}
}

// Enabled reports whether a proxy endpoint is configured.
func (e *Extractor) Enabled() bool {
	return e.proxyURL != ""
}

type proxyRequest struct {
	Endpoint string         `json:"endpoint"`
	Payload  map[string]any `json:"payload"`
}

type chatResponse struct {
	// Proxies wrap the completion in a data envelope; a bare
	// chat-completions endpoint returns choices at the top level.
	Data struct {
		Choices []chatChoice `json:"choices"`
	} `json:"data"`
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

func (r *chatResponse) firstContent() (string, bool) {
	choices := r.Data.Choices
	if len(choices) == 0 {
		choices = r.Choices
	}
	if len(choices) == 0 {
		return "", false
	}
	return choices[0].Message.Content, true
}

// ExtractWords asks the model for up to count word pairs from the
// passage at the given difficulty.
func (e *Extractor) ExtractWords(ctx context.Context, passage string, count int, difficulty Difficulty) ([]models.WordPair, error) {
	if !e.Enabled() {
		return nil, fmt.Errorf("word extraction is not configured")
	}
	if count <= 0 {
		count = 20
	}

	hint, ok := difficultyPrompts[difficulty]
	if !ok {
		hint = difficultyPrompts[DifficultyMedium]
	}

	prompt := fmt.Sprintf(
		"Extract up to %d vocabulary words from the passage below for Korean students learning English. %s\n"+
			"Reply with one word per line in the exact format: english, korean\n"+
			"No numbering, no extra commentary.\n\nPassage:\n%s",
		count, hint, passage)

	body, err := json.Marshal(proxyRequest{
		Endpoint: "chat/completions",
		Payload: map[string]any{
			"model": "gpt-4o-mini",
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
			"temperature": 0.3,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.proxyURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("extraction request returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	content, ok := chat.firstContent()
	if !ok {
		return nil, fmt.Errorf("extraction returned no choices")
	}

	pairs := ParseWordPairs(content)
	if len(pairs) > count {
		pairs = pairs[:count]
	}
	return pairs, nil
}

// ParseWordPairs reads "english, korean" lines from model output.
// Lines without a comma are skipped, as are list markers the model
// sometimes adds anyway.
func ParseWordPairs(content string) []models.WordPair {
	var pairs []models.WordPair
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*0123456789. )")
		eng, kor, found := strings.Cut(line, ",")
		if !found {
			continue
		}
		eng = strings.TrimSpace(eng)
		kor = strings.TrimSpace(kor)
		if eng == "" || kor == "" {
			continue
		}
		pairs = append(pairs, models.WordPair{Eng: eng, Kor: kor})
	}
	return pairs
}
