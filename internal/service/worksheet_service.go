package service

import (
	"errors"
	"fmt"
	"strings"

	"englisharcade/internal/models"
	"englisharcade/internal/repository"
)

var (
	ErrWorksheetNotFound = errors.New("worksheet not found")
	ErrNotWorksheetOwner = errors.New("not the worksheet owner")
)

// WorksheetService handles saved worksheet business logic
type WorksheetService struct {
	worksheetRepo *repository.WorksheetRepository
}

// NewWorksheetService creates a new worksheet service
func NewWorksheetService(worksheetRepo *repository.WorksheetRepository) *WorksheetService {
	return &WorksheetService{worksheetRepo: worksheetRepo}
}

// Save stores a new worksheet for the owner. An empty title gets a
// default derived from the first words.
func (s *WorksheetService) Save(ownerID int64, data models.WorksheetData) (*models.Worksheet, error) {
	normalizeWorksheetData(&data)
	return s.worksheetRepo.Create(ownerID, data)
}

// Get returns a worksheet by ID. Any authenticated user may load a
// worksheet, which is what makes shared links work.
func (s *WorksheetService) Get(id int64) (*models.Worksheet, error) {
	ws, err := s.worksheetRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, ErrWorksheetNotFound
	}
	return ws, nil
}

// List returns all worksheets owned by a user, newest first.
func (s *WorksheetService) List(ownerID int64) ([]models.Worksheet, error) {
	return s.worksheetRepo.ListByOwner(ownerID)
}

// Update replaces a worksheet's stored data. Only the owner may update.
func (s *WorksheetService) Update(ownerID, id int64, data models.WorksheetData) (*models.Worksheet, error) {
	ws, err := s.requireOwner(ownerID, id)
	if err != nil {
		return nil, err
	}

	normalizeWorksheetData(&data)
	if err := s.worksheetRepo.Update(id, data); err != nil {
		return nil, err
	}

	ws.Data = data
	return ws, nil
}

// Delete removes a worksheet. Only the owner may delete.
func (s *WorksheetService) Delete(ownerID, id int64) error {
	if _, err := s.requireOwner(ownerID, id); err != nil {
		return err
	}
	return s.worksheetRepo.Delete(id)
}

func (s *WorksheetService) requireOwner(ownerID, id int64) (*models.Worksheet, error) {
	ws, err := s.worksheetRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, ErrWorksheetNotFound
	}
	if ws.OwnerID != ownerID {
		return nil, ErrNotWorksheetOwner
	}
	return ws, nil
}

func normalizeWorksheetData(data *models.WorksheetData) {
	data.Title = strings.TrimSpace(data.Title)
	if data.WorksheetType == "" {
		data.WorksheetType = "wordtest"
	}
	if data.Layout == "" {
		data.Layout = string(models.LayoutDefault)
	}
	if data.Settings == "" {
		data.Settings = "{}"
	}
	if data.Images == "" {
		data.Images = "{}"
	}
	if data.Title == "" {
		data.Title = defaultWorksheetTitle(data.Words)
	}
}

func defaultWorksheetTitle(words []string) string {
	var first []string
	for _, w := range words {
		// Words are stored "eng, kor"; title uses the English side.
		if i := strings.Index(w, ","); i >= 0 {
			w = w[:i]
		}
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		first = append(first, w)
		if len(first) == 3 {
			break
		}
	}
	if len(first) == 0 {
		return "Untitled worksheet"
	}
	return fmt.Sprintf("Wordtest: %s", strings.Join(first, ", "))
}
