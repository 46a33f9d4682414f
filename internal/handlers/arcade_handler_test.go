package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newArcadeTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	lessonsDir := t.TempDir()

	handler := NewArcadeHandler(lessonsDir)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /arcade/lessons/{file}", handler.Lesson)
	mux.HandleFunc("GET /arcade/round/{mode}", handler.Round)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts, lessonsDir
}

func writeLesson(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write lesson file: %v", err)
	}
}

const animalLesson = `[
	{"word": "dog", "article": "a", "exampleSentence": "I have a dog.", "exampleSentenceKo": "나는 개가 있어요."},
	{"word": "elephant", "article": "an", "exampleSentence": "I see an elephant.", "exampleSentenceKo": "나는 코끼리를 봐요."},
	{"word": "cat", "article": "a", "exampleSentence": "She has a cat.", "exampleSentenceKo": "그녀는 고양이가 있어요."}
]`

func TestLessonServesFile(t *testing.T) {
	ts, dir := newArcadeTestServer(t)
	writeLesson(t, dir, "animals.json", animalLesson)

	resp, err := http.Get(ts.URL + "/arcade/lessons/animals.json")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}

	var items []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("failed to decode lesson body: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("expected 3 items, got %d", len(items))
	}
}

func TestLessonMissingFile(t *testing.T) {
	ts, _ := newArcadeTestServer(t)

	resp, err := http.Get(ts.URL + "/arcade/lessons/nope.json")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestLessonRejectsNonJSONName(t *testing.T) {
	ts, dir := newArcadeTestServer(t)
	writeLesson(t, dir, "animals.json", animalLesson)

	resp, err := http.Get(ts.URL + "/arcade/lessons/animals.txt")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestRoundUnscramble(t *testing.T) {
	ts, dir := newArcadeTestServer(t)
	writeLesson(t, dir, "animals.json", animalLesson)

	resp, err := http.Get(ts.URL + "/arcade/round/unscramble?file=animals.json")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Mode   string `json:"mode"`
		Rounds []struct {
			Sentence string   `json:"sentence"`
			Tokens   []string `json:"tokens"`
		} `json:"rounds"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode round payload: %v", err)
	}
	if payload.Mode != "unscramble" {
		t.Errorf("expected mode 'unscramble', got %q", payload.Mode)
	}
	if len(payload.Rounds) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(payload.Rounds))
	}
	for _, round := range payload.Rounds {
		if len(round.Tokens) == 0 {
			t.Errorf("round %q has no tokens", round.Sentence)
		}
	}
}

func TestRoundFillGap(t *testing.T) {
	ts, dir := newArcadeTestServer(t)
	writeLesson(t, dir, "animals.json", animalLesson)

	resp, err := http.Get(ts.URL + "/arcade/round/fill_gap?file=animals.json")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Mode   string `json:"mode"`
		Rounds []struct {
			Sentence string   `json:"sentence"`
			Answer   string   `json:"answer"`
			Choices  []string `json:"choices"`
		} `json:"rounds"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode round payload: %v", err)
	}
	if payload.Mode != "fill_gap" {
		t.Errorf("expected mode 'fill_gap', got %q", payload.Mode)
	}
	if len(payload.Rounds) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(payload.Rounds))
	}
	for _, round := range payload.Rounds {
		if !strings.Contains(round.Sentence, "___") {
			t.Errorf("round %q has no blank", round.Sentence)
		}
		if len(round.Choices) != 2 {
			t.Errorf("round %q choices = %v, want the a/an pair", round.Sentence, round.Choices)
		}
	}
}

func TestRoundAmAreIsLesson(t *testing.T) {
	ts, dir := newArcadeTestServer(t)
	writeLesson(t, dir, "be.json", `[
		{"word": "I", "article": "am", "exampleSentence": "I am happy."},
		{"word": "She", "article": "is", "exampleSentence": "She is on the bus."},
		{"word": "They", "article": "are", "exampleSentence": "They are ready."}
	]`)

	resp, err := http.Get(ts.URL + "/arcade/round/lesson_am_are_is?file=be.json")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var plan struct {
		Steps       []string `json:"steps"`
		AmExamples  []any    `json:"amExamples"`
		IsExamples  []any    `json:"isExamples"`
		AreExamples []any    `json:"areExamples"`
		SortingPool []any    `json:"sortingPool"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		t.Fatalf("failed to decode lesson plan: %v", err)
	}
	if len(plan.Steps) != 5 {
		t.Errorf("expected 5 steps, got %d", len(plan.Steps))
	}
	if len(plan.AmExamples) != 1 || len(plan.IsExamples) != 1 || len(plan.AreExamples) != 1 {
		t.Errorf("example columns = %d/%d/%d, want 1/1/1",
			len(plan.AmExamples), len(plan.IsExamples), len(plan.AreExamples))
	}
	if len(plan.SortingPool) != 3 {
		t.Errorf("expected 3 sorting chips, got %d", len(plan.SortingPool))
	}
}

func TestRoundUnknownMode(t *testing.T) {
	ts, dir := newArcadeTestServer(t)
	writeLesson(t, dir, "animals.json", animalLesson)

	resp, err := http.Get(ts.URL + "/arcade/round/tetris?file=animals.json")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestRoundEmptyLesson(t *testing.T) {
	ts, dir := newArcadeTestServer(t)
	writeLesson(t, dir, "empty.json", `[]`)

	resp, err := http.Get(ts.URL + "/arcade/round/sorting?file=empty.json")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}
