package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"englisharcade/internal/arcade"
)

// lessonFileRe restricts lesson file names to the flat JSON files the
// arcade ships with. No separators, so no path traversal.
var lessonFileRe = regexp.MustCompile(`^[a-zA-Z0-9._-]+\.json$`)

// ArcadeHandler serves lesson files and builds game rounds.
type ArcadeHandler struct {
	lessonsPath string
}

// NewArcadeHandler creates a new arcade handler serving lessons from
// the given directory.
func NewArcadeHandler(lessonsPath string) *ArcadeHandler {
	return &ArcadeHandler{lessonsPath: lessonsPath}
}

// Lesson serves a raw lesson JSON file.
func (h *ArcadeHandler) Lesson(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	if !lessonFileRe.MatchString(file) {
		http.Error(w, "Invalid lesson file", http.StatusBadRequest)
		return
	}

	data, err := os.ReadFile(filepath.Join(h.lessonsPath, file))
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, "Lesson not found", http.StatusNotFound)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to read lesson", "lesson read failed", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// Round builds a round payload for the requested game mode from a
// lesson file.
func (h *ArcadeHandler) Round(w http.ResponseWriter, r *http.Request) {
	mode := r.PathValue("mode")
	file := r.URL.Query().Get("file")
	if !lessonFileRe.MatchString(file) {
		http.Error(w, "Invalid lesson file", http.StatusBadRequest)
		return
	}

	data, err := os.ReadFile(filepath.Join(h.lessonsPath, file))
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, "Lesson not found", http.StatusNotFound)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to read lesson", "lesson read failed", err)
		return
	}

	items, err := arcade.LoadItems(data)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to parse lesson", "lesson parse failed", err)
		return
	}
	if len(items) == 0 {
		http.Error(w, "Lesson has no usable items", http.StatusUnprocessableEntity)
		return
	}

	name := strings.TrimSuffix(file, filepath.Ext(file))

	var payload any
	switch mode {
	case "sorting":
		payload = arcade.BuildSortingRound(items, file)
	case "find_mistake":
		payload = map[string]any{
			"mode":   mode,
			"rounds": arcade.BuildMistakeRounds(items, file, name),
		}
	case "translation_choice":
		payload = map[string]any{
			"mode":   mode,
			"rounds": arcade.BuildChoiceRounds(items, file, name),
		}
	case "unscramble":
		payload = map[string]any{
			"mode":   mode,
			"rounds": arcade.BuildUnscrambleRounds(items),
		}
	case "fill_gap":
		payload = map[string]any{
			"mode":   mode,
			"rounds": arcade.BuildFillGapRounds(items),
		}
	case "lesson":
		payload = arcade.BuildHaveHasLesson(items)
	case "lesson_am_are_is":
		payload = arcade.BuildAmAreIsLesson(items)
	default:
		http.Error(w, "Unknown game mode", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}
