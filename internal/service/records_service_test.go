package service

import (
	"path/filepath"
	"testing"
	"time"

	"englisharcade/internal/database"
	"englisharcade/internal/models"
	"englisharcade/internal/repository"
)

func newTestRecordsService(t *testing.T) *RecordsService {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	migrationsPath := filepath.Join("..", "..", "migrations", "sqlite")
	if err := db.RunMigrations(migrationsPath); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return NewRecordsService(repository.NewRecordsRepository(db))
}

func TestSessionLifecycle(t *testing.T) {
	svc := newTestRecordsService(t)

	session, err := svc.StartSession("", "find_mistake", "present_simple_sentences.json", 14, map[string]any{"class": "3B"})
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if session.ID == "" {
		t.Fatal("expected a session ID")
	}
	if session.UserID != nil {
		t.Errorf("expected nil user for anonymous session, got %v", *session.UserID)
	}

	if _, err := svc.LogAttempt(session.ID, "likes", true, "He likes milk.", "He likes milk.", nil); err != nil {
		t.Fatalf("LogAttempt failed: %v", err)
	}
	if _, err := svc.LogAttempt(session.ID, "play", false, "She play piano.", "She plays piano.", map[string]any{"wrong_token": "play"}); err != nil {
		t.Fatalf("LogAttempt failed: %v", err)
	}

	summary, err := svc.EndSession(session.ID)
	if err != nil {
		t.Fatalf("EndSession failed: %v", err)
	}
	if summary.TotalAttempts != 2 || summary.CorrectCount != 1 {
		t.Errorf("summary = %d/%d, want 1/2", summary.CorrectCount, summary.TotalAttempts)
	}
	if summary.Accuracy != 0.5 {
		t.Errorf("accuracy = %v, want 0.5", summary.Accuracy)
	}
	if summary.Session.EndedAt == nil {
		t.Error("expected EndedAt to be set")
	}
}

func TestLogAttemptUnknownSession(t *testing.T) {
	svc := newTestRecordsService(t)

	_, err := svc.LogAttempt("no-such-session", "cat", true, "cat", "cat", nil)
	if err != ErrSessionUnknown {
		t.Errorf("expected ErrSessionUnknown, got %v", err)
	}
}

func TestLogAttemptAfterEnd(t *testing.T) {
	svc := newTestRecordsService(t)

	session, err := svc.StartSession("", "unscramble", "short_questions_1.json", 10, nil)
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if _, err := svc.EndSession(session.ID); err != nil {
		t.Fatalf("EndSession failed: %v", err)
	}

	_, err = svc.LogAttempt(session.ID, "you", true, "Are you happy?", "Are you happy?", nil)
	if err != ErrSessionAlreadyEnded {
		t.Errorf("expected ErrSessionAlreadyEnded, got %v", err)
	}
}

func TestEndSessionTwice(t *testing.T) {
	svc := newTestRecordsService(t)

	session, err := svc.StartSession("7", "sorting", "have_has.json", 12, nil)
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if session.UserID == nil || *session.UserID != "7" {
		t.Fatal("expected user ID to be stored")
	}

	first, err := svc.EndSession(session.ID)
	if err != nil {
		t.Fatalf("first EndSession failed: %v", err)
	}
	endedAt := *first.Session.EndedAt

	time.Sleep(10 * time.Millisecond)

	second, err := svc.EndSession(session.ID)
	if err != nil {
		t.Fatalf("second EndSession failed: %v", err)
	}
	if !second.Session.EndedAt.Equal(endedAt) {
		t.Error("second EndSession should not move the end time")
	}
}

func TestStartSessionRequiresMode(t *testing.T) {
	svc := newTestRecordsService(t)

	if _, err := svc.StartSession("", "", "list.json", 5, nil); err == nil {
		t.Error("expected an error for empty mode")
	}
}

func TestBuildSessionSummary(t *testing.T) {
	session := &models.GameSession{ID: "s1", Mode: "translation_choice"}

	tests := []struct {
		name     string
		total    int
		correct  int
		accuracy float64
	}{
		{"no attempts", 0, 0, 0},
		{"all correct", 4, 4, 1},
		{"half correct", 4, 2, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildSessionSummary(session, tt.total, tt.correct)
			if got.Accuracy != tt.accuracy {
				t.Errorf("accuracy = %v, want %v", got.Accuracy, tt.accuracy)
			}
		})
	}
}
