package session

import (
	"context"

	"github.com/arvo-app/arvo/internal/models"
)

// Repository stores the current-session pointer: at most one serialized copy
// of a User record. The copy is refreshed whenever that user's stored record
// changes and cleared on logout or account deletion.
type Repository interface {
	// Get returns the current session user, or nil when no session exists.
	Get(ctx context.Context) (*models.User, error)

	// Set stores a copy of u as the current session user.
	Set(ctx context.Context, u *models.User) error

	// Clear removes the session pointer.
	Clear(ctx context.Context) error
}
