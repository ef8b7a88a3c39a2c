// Package notes persists Note records in the local store.
package notes

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

func (r *SQLiteRepository) Add(ctx context.Context, n *models.Note) error {
	query := `INSERT INTO notes (id, user_id, title, category, content, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.UserID, n.Title, string(n.Category), n.Content,
		n.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]models.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, category, content, created_at
		 FROM notes WHERE user_id = ? ORDER BY rowid`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	var result []models.Note
	for rows.Next() {
		n, err := scanNote(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update reads the stored record, merges the patch in memory and writes the
// result back.
func (r *SQLiteRepository) Update(ctx context.Context, id string, patch models.NotePatch) (bool, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, category, content, created_at FROM notes WHERE id = ?`, id)

	n, err := scanNote(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	patch.Apply(n)

	if _, err := r.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, category = ?, content = ? WHERE id = ?`,
		n.Title, string(n.Category), n.Content, id); err != nil {
		return false, fmt.Errorf("failed to update note: %w", err)
	}
	return true, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user notes: %w", err)
	}
	return nil
}

func scanNote(scan func(dest ...any) error) (*models.Note, error) {
	n := &models.Note{}
	var category, createdAt string
	err := scan(&n.ID, &n.UserID, &n.Title, &category, &n.Content, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan note: %w", err)
	}
	n.Category = models.NoteCategory(category)
	if n.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse note created_at: %w", err)
	}
	return n, nil
}
