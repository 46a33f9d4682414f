package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"englisharcade/internal/models"
	"englisharcade/internal/repository"
	"englisharcade/internal/utils"
)

var (
	ErrSessionUnknown      = errors.New("unknown game session")
	ErrSessionAlreadyEnded = errors.New("game session already ended")
)

// RecordsService tracks arcade game sessions and the per-word attempts
// made inside them.
type RecordsService struct {
	recordsRepo *repository.RecordsRepository
}

// NewRecordsService creates a new records service
func NewRecordsService(recordsRepo *repository.RecordsRepository) *RecordsService {
	return &RecordsService{recordsRepo: recordsRepo}
}

// StartSession records the start of a game run and returns its ID.
// userID may be empty for anonymous student play.
func (s *RecordsService) StartSession(userID, mode, listName string, listSize int, meta map[string]any) (*models.GameSession, error) {
	if mode == "" {
		return nil, errors.New("mode is required")
	}

	metaJSON := "{}"
	if len(meta) > 0 {
		b, err := json.Marshal(meta)
		if err != nil {
			return nil, fmt.Errorf("failed to encode meta: %w", err)
		}
		metaJSON = string(b)
	}

	session := &models.GameSession{
		ID:        utils.GenerateSessionID(),
		Mode:      mode,
		ListName:  listName,
		ListSize:  listSize,
		Meta:      metaJSON,
		StartedAt: time.Now(),
		Summary:   "{}",
	}
	if userID != "" {
		session.UserID = &userID
	}

	if err := s.recordsRepo.CreateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// LogAttempt records one scored answer inside an open session. Attempts
// against unknown or finished sessions are rejected.
func (s *RecordsService) LogAttempt(sessionID, word string, isCorrect bool, answer, correctAnswer string, extra map[string]any) (*models.WordAttempt, error) {
	session, err := s.recordsRepo.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionUnknown
	}
	if session.EndedAt != nil {
		return nil, ErrSessionAlreadyEnded
	}

	extraJSON := "{}"
	if len(extra) > 0 {
		b, err := json.Marshal(extra)
		if err != nil {
			return nil, fmt.Errorf("failed to encode extra: %w", err)
		}
		extraJSON = string(b)
	}

	attempt := &models.WordAttempt{
		SessionID:     sessionID,
		Mode:          session.Mode,
		Word:          word,
		IsCorrect:     isCorrect,
		Answer:        answer,
		CorrectAnswer: correctAnswer,
		Extra:         extraJSON,
		AttemptedAt:   time.Now(),
	}

	id, err := s.recordsRepo.RecordAttempt(attempt)
	if err != nil {
		return nil, err
	}
	attempt.ID = id
	return attempt, nil
}

// EndSession closes a session and stores an aggregate summary. Ending
// an already-ended session is a no-op and returns the stored session.
func (s *RecordsService) EndSession(sessionID string) (*models.SessionSummary, error) {
	session, err := s.recordsRepo.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionUnknown
	}

	if session.EndedAt != nil {
		total, correct, err := s.recordsRepo.CountAttempts(sessionID)
		if err != nil {
			return nil, err
		}
		return buildSessionSummary(session, total, correct), nil
	}

	endedAt := time.Now()
	var summaryJSON string
	total, correct, err := s.recordsRepo.CloseSession(sessionID, endedAt, func(total, correct int) (string, error) {
		accuracy := 0.0
		if total > 0 {
			accuracy = float64(correct) / float64(total)
		}
		b, err := json.Marshal(map[string]any{
			"total_attempts": total,
			"correct":        correct,
			"accuracy":       accuracy,
		})
		if err != nil {
			return "", fmt.Errorf("failed to encode summary: %w", err)
		}
		summaryJSON = string(b)
		return summaryJSON, nil
	})
	if err != nil {
		return nil, err
	}

	session.EndedAt = &endedAt
	session.Summary = summaryJSON
	return buildSessionSummary(session, total, correct), nil
}

// GetSummary returns the aggregate view of a session without changing
// its state.
func (s *RecordsService) GetSummary(sessionID string) (*models.SessionSummary, error) {
	session, err := s.recordsRepo.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionUnknown
	}

	total, correct, err := s.recordsRepo.CountAttempts(sessionID)
	if err != nil {
		return nil, err
	}

	return buildSessionSummary(session, total, correct), nil
}

// GetAttempts returns all attempts recorded for a session.
func (s *RecordsService) GetAttempts(sessionID string) ([]models.WordAttempt, error) {
	return s.recordsRepo.GetAttempts(sessionID)
}

func buildSessionSummary(session *models.GameSession, total, correct int) *models.SessionSummary {
	accuracy := 0.0
	if total > 0 {
		accuracy = float64(correct) / float64(total)
	}
	return &models.SessionSummary{
		Session:       *session,
		TotalAttempts: total,
		CorrectCount:  correct,
		Accuracy:      accuracy,
	}
}
