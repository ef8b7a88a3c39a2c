// Package cli is the interactive REPL surface of Arvo. It wires the store,
// services and the notification scheduler together and translates typed
// commands into service calls. No domain logic lives here.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/arvo-app/arvo/internal/config"
	"github.com/arvo-app/arvo/internal/logging"
	"github.com/arvo-app/arvo/internal/models"
	"github.com/arvo-app/arvo/internal/notify"
	"github.com/arvo-app/arvo/internal/services"
	"github.com/arvo-app/arvo/internal/store"
)

// App holds the wired application and the state of the interactive session.
type App struct {
	config    *config.Config
	log       logging.Logger
	store     *store.Store
	auth      services.AuthService
	users     services.UserService
	schedules services.ScheduleService
	notes     services.NoteService
	scheduler *notify.Scheduler

	reader *bufio.Reader

	// current mirrors the persisted session pointer for prompt rendering;
	// the services remain the source of truth.
	current      *models.User
	cancelNotify context.CancelFunc
}

// NewApp opens the local store and wires all services.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	st, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	db := st.DB()

	return &App{
		config:    cfg,
		log:       log,
		store:     st,
		auth:      services.NewAuthService(db, log),
		users:     services.NewUserService(db, log),
		schedules: services.NewScheduleService(db, log),
		notes:     services.NewNoteService(db, log),
		scheduler: notify.NewScheduler(db, notify.NewLogAlerter(log), log, cfg.NotifyInterval, cfg.NotifyLead),
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores a persisted session if one exists, then enters the REPL.
// It blocks until the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.store.Close(); err != nil {
			a.log.Error(ctx, "failed to close store", "error", err)
		}
	}()

	printlnFn("Welcome to Arvo (type 'help' for commands)")

	if u, err := a.auth.CurrentUser(ctx); err == nil {
		a.current = u
		a.startNotifier(ctx)
		printlnFn(fmt.Sprintf("Welcome back, %s!", u.Name))
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)

	a.stopNotifier()
}

func (a *App) isLoggedIn() bool {
	return a.current != nil
}

func (a *App) getStatus() string {
	if a.current == nil {
		return ""
	}
	return fmt.Sprintf("(%s) ", a.current.Username)
}

// startNotifier launches the reminder scheduler for the lifetime of the
// session; stopNotifier cancels it on logout or shutdown.
func (a *App) startNotifier(ctx context.Context) {
	if a.cancelNotify != nil {
		return
	}
	nctx, cancel := context.WithCancel(ctx)
	a.cancelNotify = cancel
	go a.scheduler.Run(nctx)
}

func (a *App) stopNotifier() {
	if a.cancelNotify != nil {
		a.cancelNotify()
		a.cancelNotify = nil
	}
}

// requireUser returns the session user or reports that login is needed.
func (a *App) requireUser() (*models.User, bool) {
	if a.current == nil {
		printlnFn("Please login first (type 'login' or 'register')")
		return nil, false
	}
	return a.current, true
}
