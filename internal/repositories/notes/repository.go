package notes

import (
	"context"

	"github.com/arvo-app/arvo/internal/models"
)

// Repository describes CRUD operations for Note records.
type Repository interface {
	// Add inserts a new note.
	Add(ctx context.Context, n *models.Note) error

	// ListByUser returns all notes owned by userID in insertion order.
	ListByUser(ctx context.Context, userID string) ([]models.Note, error)

	// Update merges the patch into the note with the given id. Returns false
	// (and no error) when the id is unknown.
	Update(ctx context.Context, id string, patch models.NotePatch) (bool, error)

	// Delete removes a single note.
	Delete(ctx context.Context, id string) error

	// DeleteByUser removes every note owned by userID (account cascade).
	DeleteByUser(ctx context.Context, userID string) error
}
