package services

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/arvo-app/arvo/internal/logging"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// setupDB creates an in-memory database with the full Arvo schema.
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE users (
  id          TEXT PRIMARY KEY,
  username    TEXT NOT NULL UNIQUE,
  email       TEXT NOT NULL DEFAULT '',
  password    TEXT NOT NULL,
  name        TEXT NOT NULL DEFAULT '',
  institution TEXT NOT NULL DEFAULT '',
  major       TEXT NOT NULL DEFAULT '',
  bio         TEXT NOT NULL DEFAULT '',
  role        TEXT NOT NULL DEFAULT '',
  created_at  TEXT NOT NULL
);

CREATE TABLE schedules (
  id          TEXT PRIMARY KEY,
  user_id     TEXT NOT NULL,
  title       TEXT NOT NULL,
  date        TEXT NOT NULL,
  time        TEXT NOT NULL,
  type        TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  completed   INTEGER NOT NULL DEFAULT 0,
  notified    INTEGER NOT NULL DEFAULT 0,
  created_at  TEXT NOT NULL
);

CREATE TABLE notes (
  id         TEXT PRIMARY KEY,
  user_id    TEXT NOT NULL,
  title      TEXT NOT NULL,
  category   TEXT NOT NULL,
  content    TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
);

CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func oneRow[T any](t *testing.T, db *sql.DB, q string, args ...any) T {
	t.Helper()
	var out T
	require.NoError(t, db.QueryRow(q, args...).Scan(&out))
	return out
}
