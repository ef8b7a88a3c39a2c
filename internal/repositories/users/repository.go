package users

import (
	"context"

	"github.com/arvo-app/arvo/internal/models"
)

// Repository describes CRUD and lookup operations for User records.
// Implementations are backed by the local SQLite database.
type Repository interface {
	// Add inserts a new user. Username uniqueness is pre-checked by the
	// caller; the unique index is only a backstop.
	Add(ctx context.Context, u *models.User) error

	// GetByUsername returns the user with the given username, or
	// common.ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByID returns the user with the given id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// Update replaces the stored record matching u.ID. Unknown ids are a
	// silent no-op.
	Update(ctx context.Context, u *models.User) error

	// Delete removes the user row. Dependent records are the caller's
	// concern; account deletion cascades inside one transaction.
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored users.
	Count(ctx context.Context) (int, error)
}
