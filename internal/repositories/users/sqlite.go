// Package users persists User records in the local store.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/arvo-app/arvo/internal/common"
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

func (r *SQLiteRepository) Add(ctx context.Context, u *models.User) error {
	query := `INSERT INTO users (id, username, email, password, name, institution, major, bio, role, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Username, u.Email, u.Password, u.Name, u.Institution, u.Major, u.Bio, u.Role,
		u.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

const userColumns = `id, username, email, password, name, institution, major, bio, role, created_at`

func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *SQLiteRepository) Update(ctx context.Context, u *models.User) error {
	query := `UPDATE users SET username = ?, email = ?, password = ?, name = ?,
			institution = ?, major = ?, bio = ?, role = ?, created_at = ?
			WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		u.Username, u.Email, u.Password, u.Name, u.Institution, u.Major, u.Bio, u.Role,
		u.CreatedAt.Format(time.RFC3339Nano), u.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var createdAt string
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Name,
		&u.Institution, &u.Major, &u.Bio, &u.Role, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	if u.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse user created_at: %w", err)
	}
	return u, nil
}
