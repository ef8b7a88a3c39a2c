package notify

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/arvo-app/arvo/internal/logging"
	"github.com/arvo-app/arvo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
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

CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func setSession(t *testing.T, db *sql.DB, userID string) {
	t.Helper()
	value, err := json.Marshal(&models.User{ID: userID, Username: "alice"})
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO metadata (key, value) VALUES ('current_user', ?)`, value)
	require.NoError(t, err)
}

func insertSchedule(t *testing.T, db *sql.DB, id, userID, date, tm string, notified bool) {
	t.Helper()
	n := 0
	if notified {
		n = 1
	}
	_, err := db.Exec(`INSERT INTO schedules (id, user_id, title, date, time, type, completed, notified, created_at)
		VALUES (?, ?, ?, ?, ?, 'class', 0, ?, ?)`,
		id, userID, "title-"+id, date, tm, n, time.Now().UTC().Format(time.RFC3339Nano))
	require.NoError(t, err)
}

type recordedAlert struct {
	title    string
	body     string
	severity Severity
}

type fakeAlerter struct {
	mu     sync.Mutex
	alerts []recordedAlert
}

func (f *fakeAlerter) Alert(ctx context.Context, title, body string, severity Severity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, recordedAlert{title, body, severity})
}

func (f *fakeAlerter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.alerts)
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestScheduler(db *sql.DB, alerter Alerter, now time.Time) *Scheduler {
	s := NewScheduler(db, alerter, discardLogger(), time.Minute, 15*time.Minute)
	s.nowFn = func() time.Time { return now }
	s.loc = time.UTC
	return s
}

func notifiedFlag(t *testing.T, db *sql.DB, id string) bool {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT notified FROM schedules WHERE id = ?`, id).Scan(&n))
	return n != 0
}

func TestCheckNow_UpcomingFiresOnceEver(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	setSession(t, db, "u1")

	// schedule at 10:00, scan at 09:50 (T-10min, inside the 15min window)
	insertSchedule(t, db, "s1", "u1", "2026-03-01", "10:00", false)
	alerter := &fakeAlerter{}

	s := newTestScheduler(db, alerter, time.Date(2026, 3, 1, 9, 50, 0, 0, time.UTC))
	s.CheckNow(ctx)

	require.Equal(t, 1, alerter.count())
	assert.Equal(t, SeverityInfo, alerter.alerts[0].severity)
	assert.Contains(t, alerter.alerts[0].body, "title-s1")
	assert.True(t, notifiedFlag(t, db, "s1"))

	// second evaluation at T-5min: no further alert
	s.nowFn = func() time.Time { return time.Date(2026, 3, 1, 9, 55, 0, 0, time.UTC) }
	s.CheckNow(ctx)
	assert.Equal(t, 1, alerter.count())
}

func TestCheckNow_MissedFiresWarningOnce(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	setSession(t, db, "u1")

	insertSchedule(t, db, "s1", "u1", "2026-03-01", "08:00", false)
	alerter := &fakeAlerter{}

	s := newTestScheduler(db, alerter, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	s.CheckNow(ctx)

	require.Equal(t, 1, alerter.count())
	assert.Equal(t, SeverityWarning, alerter.alerts[0].severity)
	assert.True(t, notifiedFlag(t, db, "s1"))

	s.CheckNow(ctx)
	assert.Equal(t, 1, alerter.count())
}

func TestCheckNow_OutsideLeadWindowIsSilent(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	setSession(t, db, "u1")

	// 30 minutes ahead: beyond the 15-minute lead
	insertSchedule(t, db, "s1", "u1", "2026-03-01", "10:00", false)
	alerter := &fakeAlerter{}

	s := newTestScheduler(db, alerter, time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC))
	s.CheckNow(ctx)

	assert.Equal(t, 0, alerter.count())
	assert.False(t, notifiedFlag(t, db, "s1"))
}

func TestCheckNow_AlreadyNotifiedSkipped(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	setSession(t, db, "u1")

	insertSchedule(t, db, "s1", "u1", "2026-03-01", "08:00", true)
	alerter := &fakeAlerter{}

	s := newTestScheduler(db, alerter, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	s.CheckNow(ctx)

	assert.Equal(t, 0, alerter.count())
}

func TestCheckNow_NoSessionNoScan(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	insertSchedule(t, db, "s1", "u1", "2026-03-01", "08:00", false)
	alerter := &fakeAlerter{}

	s := newTestScheduler(db, alerter, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	s.CheckNow(ctx)

	assert.Equal(t, 0, alerter.count())
	assert.False(t, notifiedFlag(t, db, "s1"))
}

func TestCheckNow_UnparsableDatetimeSkippedWithoutAlert(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	setSession(t, db, "u1")

	insertSchedule(t, db, "bad", "u1", "2026-03-01", "soon", false)
	alerter := &fakeAlerter{}

	s := newTestScheduler(db, alerter, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	s.CheckNow(ctx)

	assert.Equal(t, 0, alerter.count())
	assert.False(t, notifiedFlag(t, db, "bad"))
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	db := setupDB(t)
	alerter := &fakeAlerter{}

	s := NewScheduler(db, alerter, discardLogger(), 10*time.Millisecond, 15*time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
}
