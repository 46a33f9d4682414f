package repository

import (
	"database/sql"
	"fmt"
	"time"

	"englisharcade/internal/database"
	"englisharcade/internal/models"
)

// RecordsRepository handles database operations for game sessions and
// the per-word attempts recorded inside them.
type RecordsRepository struct {
	db *database.DB
}

// NewRecordsRepository creates a new records repository
func NewRecordsRepository(db *database.DB) *RecordsRepository {
	return &RecordsRepository{db: db}
}

// CreateSession inserts a new game session.
func (r *RecordsRepository) CreateSession(s *models.GameSession) error {
	query := `
		INSERT INTO game_sessions (id, user_id, mode, list_name, list_size, meta, started_at, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		s.ID, s.UserID, s.Mode, s.ListName, s.ListSize, s.Meta, s.StartedAt, s.Summary)
	if err != nil {
		return fmt.Errorf("failed to create game session: %w", err)
	}
	return nil
}

// GetSession retrieves a game session by ID
func (r *RecordsRepository) GetSession(id string) (*models.GameSession, error) {
	query := `
		SELECT id, user_id, mode, list_name, list_size, meta, started_at, ended_at, summary
		FROM game_sessions
		WHERE id = ?
	`
	s := &models.GameSession{}
	err := r.db.QueryRow(query, id).Scan(
		&s.ID,
		&s.UserID,
		&s.Mode,
		&s.ListName,
		&s.ListSize,
		&s.Meta,
		&s.StartedAt,
		&s.EndedAt,
		&s.Summary,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game session: %w", err)
	}

	return s, nil
}

// CloseSession counts a session's attempts and marks it finished in a
// single transaction, so attempts landing mid-close cannot skew the
// stored summary. The summarize callback turns the counts into the
// summary blob that gets persisted.
func (r *RecordsRepository) CloseSession(id string, endedAt time.Time, summarize func(total, correct int) (string, error)) (total, correct int, err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	trueVal := r.db.Dialect.BoolValue(true)
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN is_correct = %s THEN 1 ELSE 0 END), 0)
		FROM word_attempts
		WHERE session_id = ?
	`, trueVal)
	if err := tx.QueryRow(countQuery, id).Scan(&total, &correct); err != nil {
		return 0, 0, fmt.Errorf("failed to count attempts: %w", err)
	}

	summary, err := summarize(total, correct)
	if err != nil {
		return 0, 0, err
	}

	updateQuery := `
		UPDATE game_sessions
		SET ended_at = ?, summary = ?
		WHERE id = ?
	`
	if _, err := tx.Exec(updateQuery, endedAt, summary, id); err != nil {
		return 0, 0, fmt.Errorf("failed to end game session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit session close: %w", err)
	}
	return total, correct, nil
}

// RecordAttempt inserts a scored word attempt for a session.
func (r *RecordsRepository) RecordAttempt(a *models.WordAttempt) (int64, error) {
	query := `
		INSERT INTO word_attempts (session_id, mode, word, is_correct, answer, correct_answer, extra, attempted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		a.SessionID, a.Mode, a.Word, a.IsCorrect, a.Answer, a.CorrectAnswer, a.Extra, a.AttemptedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to record attempt: %w", err)
	}
	return id, nil
}

// GetAttempts retrieves all attempts for a session in the order they
// were made.
func (r *RecordsRepository) GetAttempts(sessionID string) ([]models.WordAttempt, error) {
	query := `
		SELECT id, session_id, mode, word, is_correct, answer, correct_answer, extra, attempted_at
		FROM word_attempts
		WHERE session_id = ?
		ORDER BY attempted_at, id
	`
	rows, err := r.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.WordAttempt
	for rows.Next() {
		var a models.WordAttempt
		if err := rows.Scan(
			&a.ID,
			&a.SessionID,
			&a.Mode,
			&a.Word,
			&a.IsCorrect,
			&a.Answer,
			&a.CorrectAnswer,
			&a.Extra,
			&a.AttemptedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attempts: %w", err)
	}

	return attempts, nil
}

// CountAttempts returns the total and correct attempt counts for a
// session.
func (r *RecordsRepository) CountAttempts(sessionID string) (total, correct int, err error) {
	trueVal := r.db.Dialect.BoolValue(true)
	query := fmt.Sprintf(`
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN is_correct = %s THEN 1 ELSE 0 END), 0)
		FROM word_attempts
		WHERE session_id = ?
	`, trueVal)
	err = r.db.QueryRow(query, sessionID).Scan(&total, &correct)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count attempts: %w", err)
	}
	return total, correct, nil
}
