package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/arvo-app/arvo/internal/common"
	"github.com/arvo-app/arvo/internal/logging"
	"github.com/arvo-app/arvo/internal/models"
	"github.com/arvo-app/arvo/internal/repositories/notes"
)

// AddNoteParams is the input of NoteService.Add.
type AddNoteParams struct {
	UserID   string
	Title    string
	Category models.NoteCategory
	Content  string
}

// NoteService defines note operations for the app surface.
type NoteService interface {
	Add(ctx context.Context, p AddNoteParams) (*models.Note, error)
	ListByUser(ctx context.Context, userID string) ([]models.Note, error)

	// Search returns the user's notes whose title, content or category
	// contains term, case-insensitively.
	Search(ctx context.Context, userID, term string) ([]models.Note, error)

	// Update merges the patch into the note; unknown ids are a silent no-op.
	Update(ctx context.Context, id string, patch models.NotePatch) error

	Delete(ctx context.Context, id string) error
}

type noteService struct {
	db  *sql.DB
	log logging.Logger
	now func() time.Time
}

// NewNoteService constructs a NoteService bound to the given DB.
func NewNoteService(db *sql.DB, log logging.Logger) NoteService {
	return &noteService{db: db, log: log, now: time.Now}
}

func (s *noteService) repo() notes.Repository {
	return notes.NewSQLiteRepository(s.db)
}

func (s *noteService) Add(ctx context.Context, p AddNoteParams) (*models.Note, error) {
	if p.UserID == "" || p.Title == "" || p.Content == "" {
		return nil, fmt.Errorf("%w: title and content are required", common.ErrValidation)
	}
	if !p.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown note category %q", common.ErrValidation, p.Category)
	}

	n := &models.Note{
		ID:        common.NewID(),
		UserID:    p.UserID,
		Title:     p.Title,
		Category:  p.Category,
		Content:   p.Content,
		CreatedAt: s.now(),
	}
	if err := s.repo().Add(ctx, n); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "note added", "id", n.ID, "user", n.UserID)
	return n, nil
}

func (s *noteService) ListByUser(ctx context.Context, userID string) ([]models.Note, error) {
	return s.repo().ListByUser(ctx, userID)
}

func (s *noteService) Search(ctx context.Context, userID, term string) ([]models.Note, error) {
	all, err := s.repo().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(term)
	var result []models.Note
	for _, n := range all {
		if strings.Contains(strings.ToLower(n.Title), term) ||
			strings.Contains(strings.ToLower(n.Content), term) ||
			strings.Contains(strings.ToLower(string(n.Category)), term) {
			result = append(result, n)
		}
	}
	return result, nil
}

func (s *noteService) Update(ctx context.Context, id string, patch models.NotePatch) error {
	_, err := s.repo().Update(ctx, id, patch)
	return err
}

func (s *noteService) Delete(ctx context.Context, id string) error {
	return s.repo().Delete(ctx, id)
}
