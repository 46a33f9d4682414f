package handlers

import (
	"encoding/json"
	"net/http"

	"englisharcade/internal/audio"
)

// AudioHandler resolves pronunciation clip URLs for word lists and
// grammar sentences. When no remote storage host is configured, word
// clips are synthesized on demand and served from the static tree.
type AudioHandler struct {
	resolver *audio.Resolver
	tts      *audio.TTSService
}

// NewAudioHandler creates a new audio handler
func NewAudioHandler(resolver *audio.Resolver, tts *audio.TTSService) *AudioHandler {
	return &AudioHandler{resolver: resolver, tts: tts}
}

// WordURLs checks which word clips exist on the storage host.
func (h *AudioHandler) WordURLs(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Words []string `json:"words"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "audio word decode failed", err)
		return
	}

	var results map[string]audio.Clip
	if h.resolver.Enabled() || h.tts == nil {
		results = h.resolver.ResolveWords(r.Context(), req.Words)
	} else {
		results = h.localWordURLs(r, req.Words)
	}

	writeJSON(w, http.StatusOK, results)
}

// localWordURLs generates missing clips with the TTS service and
// returns URLs under /static/audio/.
func (h *AudioHandler) localWordURLs(r *http.Request, words []string) map[string]audio.Clip {
	results := make(map[string]audio.Clip, len(words))
	for _, word := range words {
		filename, err := h.tts.GenerateAudioFile(r.Context(), word)
		if err != nil {
			results[word] = audio.Clip{}
			continue
		}
		results[word] = audio.Clip{Exists: true, URL: "/static/audio/" + filename}
	}
	return results
}

// SentenceURLs checks which sentence clips exist by ID.
func (h *AudioHandler) SentenceURLs(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SentenceIDs []string `json:"sentence_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "audio sentence decode failed", err)
		return
	}

	results := h.resolver.ResolveSentences(r.Context(), req.SentenceIDs)
	writeJSON(w, http.StatusOK, results)
}
