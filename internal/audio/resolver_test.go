package audio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func TestToSafeKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple word", "cat", "cat"},
		{"uppercase", "CAT", "cat"},
		{"spaces become underscores", "ice cream", "ice_cream"},
		{"punctuation stripped", "don't!", "dont"},
		{"trims whitespace", "  dog  ", "dog"},
		{"keeps digits and dashes", "unit-3_q7", "unit-3_q7"},
		{"non-latin stripped", "사과", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToSafeKey(tt.input); got != tt.expected {
				t.Errorf("ToSafeKey(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestResolveWords(t *testing.T) {
	var heads atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD, got %s", r.Method)
		}
		heads.Add(1)
		if strings.HasPrefix(r.URL.Path, "/words/cat") || strings.HasPrefix(r.URL.Path, "/words/ice_cream") {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	r := NewResolver(server.URL)
	results := r.ResolveWords(context.Background(), []string{"cat", "Ice Cream", "zebra", "cat"})

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3 (duplicates collapse)", len(results))
	}
	if !results["cat"].Exists {
		t.Error("cat should exist")
	}
	if !results["Ice Cream"].Exists {
		t.Error("Ice Cream should resolve via its safe key")
	}
	if results["zebra"].Exists {
		t.Error("zebra should be missing")
	}
	if got := results["Ice Cream"].URL; !strings.HasSuffix(got, "/words/ice_cream.mp3") {
		t.Errorf("URL = %q, want /words/ice_cream.mp3 suffix", got)
	}
	if heads.Load() != 3 {
		t.Errorf("made %d HEAD requests, want 3", heads.Load())
	}
}

func TestResolveDisabled(t *testing.T) {
	r := NewResolver("")
	results := r.ResolveWords(context.Background(), []string{"cat"})
	if results["cat"].Exists {
		t.Error("disabled resolver should report everything missing")
	}
}

func TestResolveSentencesPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sentences/q1.mp3" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	r := NewResolver(server.URL)
	results := r.ResolveSentences(context.Background(), []string{"q1", "q2"})
	if !results["q1"].Exists || results["q2"].Exists {
		t.Errorf("results = %v, want q1 only", results)
	}
}

func TestResolveEmptyKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("empty keys must not be probed")
	}))
	defer server.Close()

	r := NewResolver(server.URL)
	results := r.ResolveWords(context.Background(), []string{"!!!"})
	if results["!!!"].Exists {
		t.Error("unprobeable key should report missing")
	}
}
