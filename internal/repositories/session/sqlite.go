// Package session persists the current-user pointer in the metadata
// key/value table of the local store.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arvo-app/arvo/internal/dbx"
	"github.com/arvo-app/arvo/internal/models"
)

const currentUserKey = "current_user"

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context) (*models.User, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM metadata WHERE key = ?`, currentUserKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	u := &models.User{}
	if err := json.Unmarshal(value, u); err != nil {
		return nil, fmt.Errorf("failed to decode session user: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, u *models.User) error {
	value, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode session user: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, currentUserKey, value)
	if err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, currentUserKey)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
