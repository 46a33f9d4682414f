package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseWordPairs(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected int
	}{
		{
			name:     "clean lines",
			content:  "apple, 사과\nbanana, 바나나",
			expected: 2,
		},
		{
			name:     "skips comma-less lines",
			content:  "Here are the words:\napple, 사과\nThanks!",
			expected: 1,
		},
		{
			name:     "strips list markers",
			content:  "1. apple, 사과\n- banana, 바나나\n* cherry, 체리",
			expected: 3,
		},
		{
			name:     "skips half-empty pairs",
			content:  "apple,\n, 사과\ncat, 고양이",
			expected: 1,
		},
		{
			name:     "empty content",
			content:  "",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairs := ParseWordPairs(tt.content)
			if len(pairs) != tt.expected {
				t.Errorf("got %d pairs, want %d: %v", len(pairs), tt.expected, pairs)
			}
		})
	}
}

func TestParseWordPairsContent(t *testing.T) {
	pairs := ParseWordPairs("2) ice cream, 아이스크림")
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
	if pairs[0].Eng != "ice cream" || pairs[0].Kor != "아이스크림" {
		t.Errorf("pair = %+v", pairs[0])
	}
}

func TestExtractWords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req proxyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode proxy request: %v", err)
		}
		if req.Endpoint != "chat/completions" {
			t.Errorf("endpoint = %q", req.Endpoint)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "apple, 사과\nbanana, 바나나\ncherry, 체리"}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	e := NewExtractor(server.URL, "test-key")
	pairs, err := e.ExtractWords(context.Background(), "Some passage.", 2, DifficultyEasy)
	if err != nil {
		t.Fatalf("ExtractWords failed: %v", err)
	}
	if len(pairs) != 2 {
		t.Errorf("got %d pairs, want count cap of 2", len(pairs))
	}
}

func TestExtractWordsDisabled(t *testing.T) {
	e := NewExtractor("", "")
	if _, err := e.ExtractWords(context.Background(), "passage", 10, DifficultyMedium); err == nil {
		t.Error("expected an error when not configured")
	}
}

func TestExtractWordsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	e := NewExtractor(server.URL, "")
	if _, err := e.ExtractWords(context.Background(), "passage", 10, DifficultyMedium); err == nil {
		t.Error("expected an error on upstream failure")
	}
}

func TestExtractWordsEnvelopedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"data": map[string]any{
				"choices": []map[string]any{
					{"message": map[string]string{"content": "dog, 개\ncat, 고양이"}},
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	e := NewExtractor(server.URL, "")
	pairs, err := e.ExtractWords(context.Background(), "Some passage.", 10, DifficultyMedium)
	if err != nil {
		t.Fatalf("ExtractWords failed: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs, want 2", len(pairs))
	}
	if pairs[0].Eng != "dog" {
		t.Errorf("first pair = %+v", pairs[0])
	}
}
