package schedules

import (
	"context"

	"github.com/arvo-app/arvo/internal/models"
)

// Repository describes CRUD and query operations for Schedule records.
type Repository interface {
	// Add inserts a new schedule.
	Add(ctx context.Context, s *models.Schedule) error

	// ListByUser returns all schedules owned by userID in insertion order.
	ListByUser(ctx context.Context, userID string) ([]models.Schedule, error)

	// ListByUserAndDate returns the user's schedules on one calendar date,
	// in insertion order.
	ListByUserAndDate(ctx context.Context, userID, date string) ([]models.Schedule, error)

	// ListByUserAndMonth returns the user's schedules in one calendar month
	// (yearMonth is "2006-01"), in insertion order.
	ListByUserAndMonth(ctx context.Context, userID, yearMonth string) ([]models.Schedule, error)

	// Update merges the patch into the schedule with the given id. Fields
	// set in the patch overwrite, unset fields keep their prior value.
	// Returns false (and no error) when the id is unknown.
	Update(ctx context.Context, id string, patch models.SchedulePatch) (bool, error)

	// Delete removes a single schedule.
	Delete(ctx context.Context, id string) error

	// DeleteByUser removes every schedule owned by userID (account cascade).
	DeleteByUser(ctx context.Context, userID string) error
}
