package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"englisharcade/internal/worksheet"
)

func previewForm(t *testing.T, h *WorksheetHandler, words string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"title": {"Unit 3"}, "words": {words}}
	req := httptest.NewRequest(http.MethodPost, "/worksheet/preview", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Preview(rec, req)
	return rec
}

func TestPreviewFlagsDuplicateWords(t *testing.T) {
	h := NewWorksheetHandler(worksheet.NewSessionStore(nil), nil, nil, nil, nil)

	rec := previewForm(t, h, "apple, 사과\nApple, 다른뜻\nbanana, 바나나")
	if rec.Code != http.StatusOK {
		t.Fatalf("Preview status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-Duplicate-Words"); got != "apple" {
		t.Errorf("X-Duplicate-Words = %q, want %q", got, "apple")
	}
}

func TestPreviewCleanListOmitsDuplicateHeader(t *testing.T) {
	h := NewWorksheetHandler(worksheet.NewSessionStore(nil), nil, nil, nil, nil)

	rec := previewForm(t, h, "apple, 사과\nbanana, 바나나")
	if rec.Code != http.StatusOK {
		t.Fatalf("Preview status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-Duplicate-Words"); got != "" {
		t.Errorf("X-Duplicate-Words = %q, want empty", got)
	}
}
