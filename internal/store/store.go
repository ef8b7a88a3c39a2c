// Package store owns the lifecycle of the local SQLite database: opening,
// schema migration, first-run demo seeding and closing. Repositories receive
// the handle from here instead of reaching for ambient global state.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/arvo-app/arvo/internal/models"
	"github.com/arvo-app/arvo/internal/repositories/users"
	"github.com/arvo-app/arvo/internal/store/migrations"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Store wraps the open database handle.
type Store struct {
	db *sql.DB
}

// Open opens (creating if absent) the SQLite database at path, applies
// pending migrations and seeds the demo account on a first-ever run. An
// absent file simply yields a fresh empty database.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := seedDemoUser(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to seed demo data: %w", err)
	}

	return &Store{db: db}, nil
}

// DB exposes the underlying handle for repositories and transactions.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}

// seedDemoUser inserts the fixed demo account iff the users collection is
// empty, so a fresh install can be explored without registration.
func seedDemoUser(ctx context.Context, db *sql.DB) error {
	repo := users.NewSQLiteRepository(db)

	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	return repo.Add(ctx, &models.User{
		ID:          "demo-user-001",
		Username:    "demo",
		Email:       "demo@arvo.com",
		Password:    "demo123",
		Name:        "Demo User",
		Institution: "Arvo University",
		Major:       "Computer Science",
		Bio:         "Arvo demo user - Your Journey to Growth",
		Role:        "Student",
		CreatedAt:   time.Now(),
	})
}
