package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"englisharcade/internal/database"
	"englisharcade/internal/models"
)

// WorksheetRepository handles database operations for saved worksheets.
// The words column stores the word list as a JSON array so the stored
// form round-trips the manager payload exactly.
type WorksheetRepository struct {
	db *database.DB
}

// NewWorksheetRepository creates a new worksheet repository
func NewWorksheetRepository(db *database.DB) *WorksheetRepository {
	return &WorksheetRepository{db: db}
}

// Create inserts a new worksheet owned by the given user.
func (r *WorksheetRepository) Create(ownerID int64, data models.WorksheetData) (*models.Worksheet, error) {
	words, err := json.Marshal(data.Words)
	if err != nil {
		return nil, fmt.Errorf("failed to encode words: %w", err)
	}

	query := `
		INSERT INTO worksheets (owner_id, worksheet_type, title, passage_text, words, layout, settings, images)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		ownerID, data.WorksheetType, data.Title, data.PassageText,
		string(words), data.Layout, data.Settings, data.Images)
	if err != nil {
		return nil, fmt.Errorf("failed to create worksheet: %w", err)
	}

	now := time.Now()
	return &models.Worksheet{
		ID:        id,
		OwnerID:   ownerID,
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetByID retrieves a worksheet by ID
func (r *WorksheetRepository) GetByID(id int64) (*models.Worksheet, error) {
	query := `
		SELECT id, owner_id, worksheet_type, title, passage_text, words, layout, settings, images, created_at, updated_at
		FROM worksheets
		WHERE id = ?
	`
	return r.scanWorksheet(r.db.QueryRow(query, id))
}

// ListByOwner retrieves all worksheets owned by a user, newest first.
func (r *WorksheetRepository) ListByOwner(ownerID int64) ([]models.Worksheet, error) {
	query := `
		SELECT id, owner_id, worksheet_type, title, passage_text, words, layout, settings, images, created_at, updated_at
		FROM worksheets
		WHERE owner_id = ?
		ORDER BY updated_at DESC
	`
	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query worksheets: %w", err)
	}
	defer rows.Close()

	var sheets []models.Worksheet
	for rows.Next() {
		ws, err := r.scanWorksheetRows(rows)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, *ws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read worksheets: %w", err)
	}

	return sheets, nil
}

// Update replaces the stored data of a worksheet.
func (r *WorksheetRepository) Update(id int64, data models.WorksheetData) error {
	words, err := json.Marshal(data.Words)
	if err != nil {
		return fmt.Errorf("failed to encode words: %w", err)
	}

	query := `
		UPDATE worksheets
		SET worksheet_type = ?, title = ?, passage_text = ?, words = ?, layout = ?, settings = ?, images = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err = r.db.Exec(query,
		data.WorksheetType, data.Title, data.PassageText,
		string(words), data.Layout, data.Settings, data.Images, id)
	if err != nil {
		return fmt.Errorf("failed to update worksheet: %w", err)
	}
	return nil
}

// Delete removes a worksheet
func (r *WorksheetRepository) Delete(id int64) error {
	query := "DELETE FROM worksheets WHERE id = ?"
	_, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete worksheet: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *WorksheetRepository) scanWorksheet(row *sql.Row) (*models.Worksheet, error) {
	ws, err := scanWorksheetFrom(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return ws, err
}

func (r *WorksheetRepository) scanWorksheetRows(rows *sql.Rows) (*models.Worksheet, error) {
	return scanWorksheetFrom(rows)
}

func scanWorksheetFrom(row rowScanner) (*models.Worksheet, error) {
	ws := &models.Worksheet{}
	var words string
	err := row.Scan(
		&ws.ID,
		&ws.OwnerID,
		&ws.Data.WorksheetType,
		&ws.Data.Title,
		&ws.Data.PassageText,
		&words,
		&ws.Data.Layout,
		&ws.Data.Settings,
		&ws.Data.Images,
		&ws.CreatedAt,
		&ws.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan worksheet: %w", err)
	}

	if words != "" {
		if err := json.Unmarshal([]byte(words), &ws.Data.Words); err != nil {
			return nil, fmt.Errorf("failed to decode words: %w", err)
		}
	}

	return ws, nil
}
