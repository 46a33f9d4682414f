package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"englisharcade/internal/service"
)

// RecordsHandler handles the session-tracking API the arcade games
// post to.
type RecordsHandler struct {
	recordsService *service.RecordsService
}

// NewRecordsHandler creates a new records handler
func NewRecordsHandler(recordsService *service.RecordsService) *RecordsHandler {
	return &RecordsHandler{recordsService: recordsService}
}

// StartSession opens a new game session.
func (h *RecordsHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode     string         `json:"mode"`
		ListName string         `json:"list_name"`
		ListSize int            `json:"list_size"`
		Meta     map[string]any `json:"meta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "session start decode failed", err)
		return
	}

	// Logged-in teachers get their runs attributed; students play
	// anonymously.
	userID := ""
	if user := GetUserFromContext(r.Context()); user != nil {
		userID = strconv.FormatInt(user.ID, 10)
	}

	session, err := h.recordsService.StartSession(userID, req.Mode, req.ListName, req.ListSize, req.Meta)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Failed to start session", "session start failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"session_id": session.ID})
}

// Attempt records one scored answer.
func (h *RecordsHandler) Attempt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID     string         `json:"session_id"`
		Word          string         `json:"word"`
		IsCorrect     bool           `json:"is_correct"`
		Answer        string         `json:"answer"`
		CorrectAnswer string         `json:"correct_answer"`
		Extra         map[string]any `json:"extra"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "attempt decode failed", err)
		return
	}

	attempt, err := h.recordsService.LogAttempt(req.SessionID, req.Word, req.IsCorrect, req.Answer, req.CorrectAnswer, req.Extra)
	switch err {
	case nil:
		writeJSON(w, http.StatusOK, map[string]any{"attempt_id": attempt.ID})
	case service.ErrSessionUnknown:
		http.Error(w, "Unknown session", http.StatusNotFound)
	case service.ErrSessionAlreadyEnded:
		http.Error(w, "Session already ended", http.StatusConflict)
	default:
		respondWithError(w, http.StatusInternalServerError, "Failed to record attempt", "attempt record failed", err)
	}
}

// EndSession closes a session and returns its summary.
func (h *RecordsHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "session end decode failed", err)
		return
	}

	summary, err := h.recordsService.EndSession(req.SessionID)
	switch err {
	case nil:
		writeJSON(w, http.StatusOK, map[string]any{
			"session_id":     summary.Session.ID,
			"total_attempts": summary.TotalAttempts,
			"correct":        summary.CorrectCount,
			"accuracy":       summary.Accuracy,
		})
	case service.ErrSessionUnknown:
		http.Error(w, "Unknown session", http.StatusNotFound)
	default:
		respondWithError(w, http.StatusInternalServerError, "Failed to end session", "session end failed", err)
	}
}
