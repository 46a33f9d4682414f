package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"englisharcade/internal/ai"
	"englisharcade/internal/models"
	"englisharcade/internal/service"
	"englisharcade/internal/utils"
	"englisharcade/internal/worksheet"
)

// editorCookieName keys the server-side editor session for a browser.
const editorCookieName = "editor_id"

// WorksheetHandler handles worksheet editing, rendering and storage.
type WorksheetHandler struct {
	sessions         *worksheet.SessionStore
	pdf              *worksheet.PDFGenerator
	worksheetService *service.WorksheetService
	emailService     *service.EmailService
	extractor        *ai.Extractor
}

// NewWorksheetHandler creates a new worksheet handler
func NewWorksheetHandler(sessions *worksheet.SessionStore, pdf *worksheet.PDFGenerator, worksheetService *service.WorksheetService, emailService *service.EmailService, extractor *ai.Extractor) *WorksheetHandler {
	return &WorksheetHandler{
		sessions:         sessions,
		pdf:              pdf,
		worksheetService: worksheetService,
		emailService:     emailService,
		extractor:        extractor,
	}
}

// editorState returns the editor session for this browser, creating
// the session cookie on first use.
func (h *WorksheetHandler) editorState(w http.ResponseWriter, r *http.Request) *worksheet.State {
	cookie, err := r.Cookie(editorCookieName)
	if err != nil || cookie.Value == "" {
		id := utils.GenerateSessionID()
		http.SetCookie(w, &http.Cookie{
			Name:     editorCookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		return h.sessions.Get(id)
	}
	return h.sessions.Get(cookie.Value)
}

// applyForm folds the posted editor form into the session state.
func (h *WorksheetHandler) applyForm(r *http.Request, state *worksheet.State) error {
	if err := r.ParseForm(); err != nil {
		return err
	}

	if r.Form.Has("title") {
		state.SetTitle(strings.TrimSpace(r.FormValue("title")))
	}
	if r.Form.Has("passage") {
		state.SetPassage(r.FormValue("passage"))
	}
	if r.Form.Has("words") {
		state.SetWords(worksheet.ParseWordLines(r.FormValue("words")))
	}

	st := state.Settings()
	if v := r.FormValue("font"); v != "" {
		st.Font = v
	}
	if v := r.FormValue("fontSize"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			st.FontSize = n
		}
	}
	if v := r.FormValue("layout"); v != "" {
		st.Layout = models.Layout(v)
	}
	if v := r.FormValue("testMode"); v != "" {
		st.TestMode = models.TestMode(v)
	}
	if v := r.FormValue("numLettersToHide"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			st.NumLettersToHide = n
		}
	}
	if v := r.FormValue("imageGap"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			st.ImageGap = n
		}
	}
	if v := r.FormValue("imageSize"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			st.ImageSize = n
		}
	}
	state.UpdateSettings(st)

	return nil
}

// Preview renders the worksheet HTML for the posted editor form.
func (h *WorksheetHandler) Preview(w http.ResponseWriter, r *http.Request) {
	state := h.editorState(w, r)
	if err := h.applyForm(r, state); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "preview form parse failed", err)
		return
	}

	renderer := worksheet.NewRenderer(state.Images())
	title, _ := state.TitleAndPassage()
	body, err := renderer.Render(r.Context(), title, state.Words(), state.Settings())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to render worksheet", "worksheet render failed", err)
		return
	}

	if dups := worksheet.DuplicateWarning(state.Words()); len(dups) > 0 {
		w.Header().Set("X-Duplicate-Words", strings.Join(dups, ", "))
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, body)
}

// Print returns a standalone print document for the posted form.
func (h *WorksheetHandler) Print(w http.ResponseWriter, r *http.Request) {
	state := h.editorState(w, r)
	if err := h.applyForm(r, state); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "print form parse failed", err)
		return
	}

	doc, err := h.printDocument(r, state)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to build print document", "print render failed", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, doc)
}

// PDF converts the posted form into an A4 PDF attachment.
func (h *WorksheetHandler) PDF(w http.ResponseWriter, r *http.Request) {
	state := h.editorState(w, r)
	if err := h.applyForm(r, state); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "pdf form parse failed", err)
		return
	}

	renderer := worksheet.NewRenderer(state.Images())
	title, _ := state.TitleAndPassage()
	body, err := renderer.Render(r.Context(), title, state.Words(), state.Settings())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to render worksheet", "worksheet render failed", err)
		return
	}

	pdfBytes, err := h.pdf.Generate(r.Context(), body, state.Settings())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to generate PDF", "pdf generation failed", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", worksheet.PDFFilename(title)))
	w.Write(pdfBytes)
}

func (h *WorksheetHandler) printDocument(r *http.Request, state *worksheet.State) (string, error) {
	renderer := worksheet.NewRenderer(state.Images())
	title, _ := state.TitleAndPassage()
	body, err := renderer.Render(r.Context(), title, state.Words(), state.Settings())
	if err != nil {
		return "", err
	}
	return worksheet.BuildPrintDocument(body, state.Settings()), nil
}

// Extract asks the AI extractor for a word list from a passage and
// loads it into the editor session.
func (h *WorksheetHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Passage    string `json:"passage"`
		Count      int    `json:"count"`
		Difficulty string `json:"difficulty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "extract decode failed", err)
		return
	}
	if strings.TrimSpace(req.Passage) == "" {
		http.Error(w, "Passage is required", http.StatusBadRequest)
		return
	}

	pairs, err := h.extractor.ExtractWords(r.Context(), req.Passage, req.Count, ai.Difficulty(req.Difficulty))
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Word extraction failed", "word extraction failed", err)
		return
	}

	state := h.editorState(w, r)
	state.SetPassage(req.Passage)
	state.SetWords(pairs)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"words": pairs,
		"text":  worksheet.FormatWordLines(pairs),
	})
}

// Save stores the current editor session as a worksheet row.
func (h *WorksheetHandler) Save(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	state := h.editorState(w, r)
	if err := h.applyForm(r, state); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "save form parse failed", err)
		return
	}

	data, err := state.Snapshot()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to capture worksheet", "worksheet snapshot failed", err)
		return
	}

	ws, err := h.worksheetService.Save(user.ID, data)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to save worksheet", "worksheet save failed", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"id": ws.ID, "title": ws.Data.Title})
}

type worksheetListItem struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Type      string `json:"worksheet_type"`
	Layout    string `json:"layout"`
	WordCount int    `json:"word_count"`
	UpdatedAt string `json:"updated_at"`
}

// List returns the caller's saved worksheets, newest first.
func (h *WorksheetHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	sheets, err := h.worksheetService.List(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list worksheets", "worksheet list failed", err)
		return
	}

	items := make([]worksheetListItem, 0, len(sheets))
	for _, ws := range sheets {
		items = append(items, worksheetListItem{
			ID:        ws.ID,
			Title:     ws.Data.Title,
			Type:      ws.Data.WorksheetType,
			Layout:    ws.Data.Layout,
			WordCount: len(ws.Data.Words),
			UpdatedAt: ws.UpdatedAt.Format(time.RFC3339),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"worksheets": items})
}

// Load fetches a saved worksheet into the editor session and returns
// its stored data. Share links land here.
func (h *WorksheetHandler) Load(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid worksheet ID", http.StatusBadRequest)
		return
	}

	ws, err := h.worksheetService.Get(id)
	if err == service.ErrWorksheetNotFound {
		http.Error(w, "Worksheet not found", http.StatusNotFound)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load worksheet", "worksheet load failed", err)
		return
	}

	state := h.editorState(w, r)
	state.LoadWorksheet(ws.Data)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":   ws.ID,
		"data": ws.Data,
	})
}

// Update overwrites a saved worksheet with the current editor session.
func (h *WorksheetHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid worksheet ID", http.StatusBadRequest)
		return
	}

	state := h.editorState(w, r)
	if err := h.applyForm(r, state); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "update form parse failed", err)
		return
	}

	data, err := state.Snapshot()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to capture worksheet", "worksheet snapshot failed", err)
		return
	}

	ws, err := h.worksheetService.Update(user.ID, id, data)
	switch err {
	case nil:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": ws.ID, "title": ws.Data.Title})
	case service.ErrWorksheetNotFound:
		http.Error(w, "Worksheet not found", http.StatusNotFound)
	case service.ErrNotWorksheetOwner:
		http.Error(w, "Not your worksheet", http.StatusForbidden)
	default:
		respondWithError(w, http.StatusInternalServerError, "Failed to update worksheet", "worksheet update failed", err)
	}
}

// Delete removes a saved worksheet owned by the caller.
func (h *WorksheetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid worksheet ID", http.StatusBadRequest)
		return
	}

	err = h.worksheetService.Delete(user.ID, id)
	switch err {
	case nil:
		w.WriteHeader(http.StatusNoContent)
	case service.ErrWorksheetNotFound:
		http.Error(w, "Worksheet not found", http.StatusNotFound)
	case service.ErrNotWorksheetOwner:
		http.Error(w, "Not your worksheet", http.StatusForbidden)
	default:
		respondWithError(w, http.StatusInternalServerError, "Failed to delete worksheet", "worksheet delete failed", err)
	}
}

// Share emails a link to a saved worksheet.
func (h *WorksheetHandler) Share(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid worksheet ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "share decode failed", err)
		return
	}
	if err := utils.ValidateEmail(req.Email); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ws, err := h.worksheetService.Get(id)
	if err == service.ErrWorksheetNotFound {
		http.Error(w, "Worksheet not found", http.StatusNotFound)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load worksheet", "worksheet load failed", err)
		return
	}

	if !h.emailService.IsEnabled() {
		http.Error(w, "Email sharing is not configured", http.StatusServiceUnavailable)
		return
	}
	if err := h.emailService.SendWorksheetShareEmail(r.Context(), req.Email, user.Name, ws.Data.Title, ws.ID); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to send share email", "share email failed", err)
		return
	}

	log.Printf("Worksheet %d shared by user %d with %s", ws.ID, user.ID, req.Email)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"sent": true})
}
