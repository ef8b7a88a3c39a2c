package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/arvo-app/arvo/internal/common"
	"github.com/arvo-app/arvo/internal/logging"
	"github.com/arvo-app/arvo/internal/models"
	"github.com/arvo-app/arvo/internal/repositories/schedules"
)

// AddScheduleParams is the input of ScheduleService.Add.
type AddScheduleParams struct {
	UserID      string
	Title       string
	Date        string // "2006-01-02"
	Time        string // "15:04"
	Type        models.ScheduleType
	Description string
}

// ScheduleService defines schedule operations for the app surface.
type ScheduleService interface {
	Add(ctx context.Context, p AddScheduleParams) (*models.Schedule, error)
	ListByUser(ctx context.Context, userID string) ([]models.Schedule, error)

	// ListToday returns the user's schedules whose date equals the current
	// calendar date in local time.
	ListToday(ctx context.Context, userID string) ([]models.Schedule, error)

	// ListOnDate returns the user's schedules on one calendar date.
	ListOnDate(ctx context.Context, userID, date string) ([]models.Schedule, error)

	// ListForMonth returns the user's schedules in the given month.
	ListForMonth(ctx context.Context, userID string, year int, month time.Month) ([]models.Schedule, error)

	// Update merges the patch into the schedule; unknown ids are a silent
	// no-op.
	Update(ctx context.Context, id string, patch models.SchedulePatch) error

	// SetCompleted flips the completion flag.
	SetCompleted(ctx context.Context, id string, completed bool) error

	Delete(ctx context.Context, id string) error
}

type scheduleService struct {
	db  *sql.DB
	log logging.Logger
	now func() time.Time
}

// NewScheduleService constructs a ScheduleService bound to the given DB.
func NewScheduleService(db *sql.DB, log logging.Logger) ScheduleService {
	return &scheduleService{db: db, log: log, now: time.Now}
}

func (s *scheduleService) repo() schedules.Repository {
	return schedules.NewSQLiteRepository(s.db)
}

func (s *scheduleService) Add(ctx context.Context, p AddScheduleParams) (*models.Schedule, error) {
	if p.UserID == "" || p.Title == "" || p.Date == "" || p.Time == "" {
		return nil, fmt.Errorf("%w: title, date and time are required", common.ErrValidation)
	}
	if !p.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown schedule type %q", common.ErrValidation, p.Type)
	}
	if _, err := time.Parse(models.DateLayout, p.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", common.ErrValidation)
	}
	if _, err := time.Parse(models.TimeLayout, p.Time); err != nil {
		return nil, fmt.Errorf("%w: time must be HH:MM", common.ErrValidation)
	}

	sched := &models.Schedule{
		ID:          common.NewID(),
		UserID:      p.UserID,
		Title:       p.Title,
		Date:        p.Date,
		Time:        p.Time,
		Type:        p.Type,
		Description: p.Description,
		CreatedAt:   s.now(),
	}
	if err := s.repo().Add(ctx, sched); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "schedule added", "id", sched.ID, "user", sched.UserID, "date", sched.Date)
	return sched, nil
}

func (s *scheduleService) ListByUser(ctx context.Context, userID string) ([]models.Schedule, error) {
	return s.repo().ListByUser(ctx, userID)
}

func (s *scheduleService) ListToday(ctx context.Context, userID string) ([]models.Schedule, error) {
	today := s.now().Format(models.DateLayout)
	return s.repo().ListByUserAndDate(ctx, userID, today)
}

func (s *scheduleService) ListOnDate(ctx context.Context, userID, date string) ([]models.Schedule, error) {
	return s.repo().ListByUserAndDate(ctx, userID, date)
}

func (s *scheduleService) ListForMonth(ctx context.Context, userID string, year int, month time.Month) ([]models.Schedule, error) {
	yearMonth := fmt.Sprintf("%04d-%02d", year, int(month))
	return s.repo().ListByUserAndMonth(ctx, userID, yearMonth)
}

func (s *scheduleService) Update(ctx context.Context, id string, patch models.SchedulePatch) error {
	// Unknown ids are a silent no-op: ids come from prior listings, so a
	// miss only means the record is already gone.
	_, err := s.repo().Update(ctx, id, patch)
	return err
}

func (s *scheduleService) SetCompleted(ctx context.Context, id string, completed bool) error {
	return s.Update(ctx, id, models.SchedulePatch{Completed: &completed})
}

func (s *scheduleService) Delete(ctx context.Context, id string) error {
	return s.repo().Delete(ctx, id)
}
