package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAIProxyWrapsResponseInDataEnvelope(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"apple, 사과"}}]}`))
	}))
	defer upstream.Close()

	h := NewOpenAIProxyHandler("test-key")
	h.baseURL = upstream.URL

	body := `{"endpoint":"chat/completions","payload":{"model":"gpt-4o-mini"}}`
	req := httptest.NewRequest(http.MethodPost, "/functions/openai_proxy", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	h.Proxy(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	var decoded struct {
		Data struct {
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		} `json:"data"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if len(decoded.Data.Choices) != 1 {
		t.Fatalf("expected 1 choice under data, got %d", len(decoded.Data.Choices))
	}
	if got := decoded.Data.Choices[0].Message.Content; got != "apple, 사과" {
		t.Errorf("content = %q", got)
	}
}

func TestOpenAIProxyRejectsUnknownEndpoint(t *testing.T) {
	h := NewOpenAIProxyHandler("test-key")

	body := `{"endpoint":"images/generations","payload":{}}`
	req := httptest.NewRequest(http.MethodPost, "/functions/openai_proxy", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	h.Proxy(recorder, req)

	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", recorder.Code)
	}
}

func TestOpenAIProxyUnconfigured(t *testing.T) {
	h := NewOpenAIProxyHandler("")

	req := httptest.NewRequest(http.MethodPost, "/functions/openai_proxy", strings.NewReader(`{}`))
	recorder := httptest.NewRecorder()

	h.Proxy(recorder, req)

	if recorder.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", recorder.Code)
	}
}
