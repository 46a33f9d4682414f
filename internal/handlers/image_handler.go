package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"englisharcade/internal/images"
	"englisharcade/internal/worksheet"
)

// ImageHandler handles per-slot image actions for the worksheet editor
// and the Pixabay search proxy.
type ImageHandler struct {
	sessions *worksheet.SessionStore
	pixabay  *images.PixabayClient
}

// NewImageHandler creates a new image handler
func NewImageHandler(sessions *worksheet.SessionStore, pixabay *images.PixabayClient) *ImageHandler {
	return &ImageHandler{
		sessions: sessions,
		pixabay:  pixabay,
	}
}

func (h *ImageHandler) store(w http.ResponseWriter, r *http.Request) *images.Store {
	cookie, err := r.Cookie(editorCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	return h.sessions.Get(cookie.Value).Images()
}

// slotParams reads the word and slot index shared by all slot actions.
func slotParams(r *http.Request) (string, int, bool) {
	word := r.FormValue("word")
	if word == "" {
		return "", 0, false
	}
	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil || index < 0 {
		return "", 0, false
	}
	return word, index, true
}

func writeCandidate(w http.ResponseWriter, c images.Candidate, size int) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"kind":  c.Kind,
		"value": c.Value,
		"html":  c.HTML(size),
	})
}

// Cycle advances a slot to its next image alternative.
func (h *ImageHandler) Cycle(w http.ResponseWriter, r *http.Request) {
	store := h.store(w, r)
	if store == nil {
		http.Error(w, "No editor session", http.StatusBadRequest)
		return
	}
	word, index, ok := slotParams(r)
	if !ok {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	c, ok := store.Cycle(word, index)
	if !ok {
		c = store.Resolve(r.Context(), word, index)
	}
	writeCandidate(w, c, imageSize(r))
}

// Upload accepts a dropped image file for a slot.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	store := h.store(w, r)
	if store == nil {
		http.Error(w, "No editor session", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "upload form parse failed", err)
		return
	}
	word, index, ok := slotParams(r)
	if !ok {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to read upload", "upload read failed", err)
		return
	}

	c, err := store.AcceptUpload(word, index, data)
	if err != nil {
		// Validation messages are written for the user as-is.
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeCandidate(w, c, imageSize(r))
}

// More fetches extra search variants for a slot and reports the new
// alternative count.
func (h *ImageHandler) More(w http.ResponseWriter, r *http.Request) {
	store := h.store(w, r)
	if store == nil {
		http.Error(w, "No editor session", http.StatusBadRequest)
		return
	}
	word, index, ok := slotParams(r)
	if !ok {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	count := store.AddMore(r.Context(), word, index)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"count": count})
}

// Reset drops all slot state for the editor session.
func (h *ImageHandler) Reset(w http.ResponseWriter, r *http.Request) {
	store := h.store(w, r)
	if store == nil {
		http.Error(w, "No editor session", http.StatusBadRequest)
		return
	}
	store.Reset()
	w.WriteHeader(http.StatusNoContent)
}

// Error records a broken image report and returns the candidate the
// slot should now show.
func (h *ImageHandler) Error(w http.ResponseWriter, r *http.Request) {
	store := h.store(w, r)
	if store == nil {
		http.Error(w, "No editor session", http.StatusBadRequest)
		return
	}
	word, index, ok := slotParams(r)
	if !ok {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	c := store.ReportBroken(word, index)
	writeCandidate(w, c, imageSize(r))
}

// Pixabay proxies an image search for the frontend, keeping the API
// key server-side.
func (h *ImageHandler) Pixabay(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "Missing query", http.StatusBadRequest)
		return
	}

	opts := images.SearchOptions{
		ImageType:   r.URL.Query().Get("image_type"),
		ContentType: r.URL.Query().Get("content_type"),
		Order:       r.URL.Query().Get("order"),
		SafeSearch:  true,
	}
	if v := r.URL.Query().Get("per_page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.PerPage = n
		}
	}
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Page = n
		}
	}

	result, err := h.pixabay.Search(r.Context(), query, opts)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Image search failed", "pixabay search failed", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func imageSize(r *http.Request) int {
	if v := r.FormValue("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 50
}
