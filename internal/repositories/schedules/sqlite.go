// Package schedules persists Schedule records in the local store.
package schedules

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/arvo-app/arvo/internal/dbx"
	"github.com/arvo-app/arvo/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, s *models.Schedule) error {
	query := `INSERT INTO schedules (id, user_id, title, date, time, type, description, completed, notified, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.UserID, s.Title, s.Date, s.Time, string(s.Type), s.Description,
		boolToInt(s.Completed), boolToInt(s.Notified), s.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert schedule: %w", err)
	}
	return nil
}

const scheduleColumns = `id, user_id, title, date, time, type, description, completed, notified, created_at`

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]models.Schedule, error) {
	return r.list(ctx,
		`SELECT `+scheduleColumns+` FROM schedules WHERE user_id = ? ORDER BY rowid`, userID)
}

func (r *SQLiteRepository) ListByUserAndDate(ctx context.Context, userID, date string) ([]models.Schedule, error) {
	return r.list(ctx,
		`SELECT `+scheduleColumns+` FROM schedules WHERE user_id = ? AND date = ? ORDER BY rowid`,
		userID, date)
}

func (r *SQLiteRepository) ListByUserAndMonth(ctx context.Context, userID, yearMonth string) ([]models.Schedule, error) {
	return r.list(ctx,
		`SELECT `+scheduleColumns+` FROM schedules WHERE user_id = ? AND substr(date, 1, 7) = ? ORDER BY rowid`,
		userID, yearMonth)
}

// Update reads the stored record, merges the patch in memory and writes the
// result back. Read and write share the DBTX, so callers needing atomicity
// run this inside dbx.WithTx.
func (r *SQLiteRepository) Update(ctx context.Context, id string, patch models.SchedulePatch) (bool, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+scheduleColumns+` FROM schedules WHERE id = ?`, id)

	s, err := scanSchedule(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	patch.Apply(s)

	query := `UPDATE schedules SET title = ?, date = ?, time = ?, type = ?,
			description = ?, completed = ?, notified = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query,
		s.Title, s.Date, s.Time, string(s.Type), s.Description,
		boolToInt(s.Completed), boolToInt(s.Notified), id); err != nil {
		return false, fmt.Errorf("failed to update schedule: %w", err)
	}
	return true, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user schedules: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]models.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select schedules: %w", err)
	}
	defer rows.Close()

	var result []models.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanSchedule(scan func(dest ...any) error) (*models.Schedule, error) {
	s := &models.Schedule{}
	var typ, createdAt string
	var completed, notified int
	err := scan(&s.ID, &s.UserID, &s.Title, &s.Date, &s.Time, &typ,
		&s.Description, &completed, &notified, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan schedule: %w", err)
	}
	s.Type = models.ScheduleType(typ)
	s.Completed = completed != 0
	s.Notified = notified != 0
	if s.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse schedule created_at: %w", err)
	}
	return s, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
