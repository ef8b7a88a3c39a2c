package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arvo-app/arvo/internal/config"
	"github.com/arvo-app/arvo/internal/logging"
	"github.com/arvo-app/arvo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp wires an App over a throwaway on-disk database.
func newTestApp(t *testing.T) *App {
	t.Helper()
	muteOutput(t)

	ctx := context.Background()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "arvo.db")

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	app, err := NewApp(ctx, cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.store.Close() })

	return app
}

// feedText replaces the text-input seam with canned answers, consumed in order.
func feedText(t *testing.T, answers ...string) {
	t.Helper()
	orig := getSimpleText
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			t.Fatalf("unexpected text prompt #%d", i+1)
		}
		a := answers[i]
		i++
		return a, nil
	}
	t.Cleanup(func() { getSimpleText = orig })
}

func feedPasswords(t *testing.T, answers ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(_ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			t.Fatalf("unexpected password prompt #%d", i+1)
		}
		a := answers[i]
		i++
		return a, nil
	}
	t.Cleanup(func() { getPassword = orig })
}

func registerAlice(t *testing.T, app *App) {
	t.Helper()
	feedText(t, "alice", "alice@example.com")
	feedPasswords(t, "pw1", "pw1")
	require.NoError(t, app.Register(context.Background()))
	require.True(t, app.isLoggedIn())
}

func TestApp_RegisterOpensSession(t *testing.T) {
	app := newTestApp(t)
	registerAlice(t, app)

	u, err := app.auth.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Contains(t, app.getStatus(), "alice")

	app.stopNotifier()
}

func TestApp_LogoutStopsNotifierAndClearsSession(t *testing.T) {
	app := newTestApp(t)
	registerAlice(t, app)

	require.NoError(t, app.Logout(context.Background()))
	assert.False(t, app.isLoggedIn())
	assert.Nil(t, app.cancelNotify)

	_, err := app.auth.CurrentUser(context.Background())
	require.Error(t, err)
}

func TestApp_AddScheduleAndDone(t *testing.T) {
	app := newTestApp(t)
	registerAlice(t, app)
	defer app.stopNotifier()

	ctx := context.Background()

	feedText(t, "Algebra", "2026-03-01", "09:00", "class", "room 12")
	require.NoError(t, app.AddSchedule(ctx))

	feedText(t, "Chemistry", "2026-03-01", "11:00", "class", "")
	require.NoError(t, app.AddSchedule(ctx))

	// Index 1 resolves against the date/time-sorted listing, so it is Algebra.
	require.NoError(t, app.Done(ctx, "1"))

	list, err := app.listSchedules(ctx, app.current.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Algebra", list[0].Title)
	assert.True(t, list[0].Completed)
	assert.False(t, list[1].Completed)
}

func TestApp_DoneRejectsBadIndex(t *testing.T) {
	app := newTestApp(t)
	registerAlice(t, app)
	defer app.stopNotifier()

	ctx := context.Background()
	require.Error(t, app.Done(ctx, "nope"))
	require.Error(t, app.Done(ctx, "7"))
}

func TestApp_CommandsRequireLogin(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	require.Error(t, app.Today(ctx))
	require.Error(t, app.AddNote(ctx))
	require.Error(t, app.Export(ctx))
}

func TestApp_ExportWritesBundleFile(t *testing.T) {
	app := newTestApp(t)
	registerAlice(t, app)
	defer app.stopNotifier()

	ctx := context.Background()

	feedText(t, "Algebra", "2026-03-01", "09:00", "class", "")
	require.NoError(t, app.AddSchedule(ctx))

	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })

	require.NoError(t, app.Export(ctx))

	name := "arvo-data-alice-" + time.Now().Format("2006-01-02") + ".json"
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)

	var bundle models.ExportBundle
	require.NoError(t, json.Unmarshal(data, &bundle))
	assert.Equal(t, "alice", bundle.User.Username)
	assert.Len(t, bundle.Schedules, 1)
	assert.NotNil(t, bundle.Notes)
}

func TestApp_DeleteAccountNeedsConfirmation(t *testing.T) {
	app := newTestApp(t)
	registerAlice(t, app)
	defer app.stopNotifier()

	ctx := context.Background()

	feedText(t, "no")
	require.NoError(t, app.DeleteAccount(ctx))
	assert.True(t, app.isLoggedIn())

	feedText(t, "yes")
	require.NoError(t, app.DeleteAccount(ctx))
	assert.False(t, app.isLoggedIn())

	_, err := app.auth.Login(ctx, "alice", "pw1")
	require.Error(t, err)
}

func TestApp_ProfileEditKeepsEmptyFields(t *testing.T) {
	app := newTestApp(t)
	registerAlice(t, app)
	defer app.stopNotifier()

	ctx := context.Background()

	feedText(t, "Alice A.", "", "MIT", "", "")
	require.NoError(t, app.Profile(ctx, "edit"))

	u, err := app.auth.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "MIT", u.Institution)
}

func TestApp_SearchNotesFlow(t *testing.T) {
	app := newTestApp(t)
	registerAlice(t, app)
	defer app.stopNotifier()

	ctx := context.Background()

	origML := getMultiline
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		return "eigenvalues and eigenvectors", nil
	}
	t.Cleanup(func() { getMultiline = origML })

	feedText(t, "Linear Algebra recap", "class")
	require.NoError(t, app.AddNote(ctx))

	notes, err := app.notes.Search(ctx, app.current.ID, "ALGEBRA")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.True(t, strings.Contains(notes[0].Content, "eigenvalues"))

	svcNotes, err := app.notes.ListByUser(ctx, app.current.ID)
	require.NoError(t, err)
	require.Len(t, svcNotes, 1)
	assert.Equal(t, models.NoteCategoryClass, svcNotes[0].Category)
}
