// Package services contains the application services layered over the
// repositories: authentication and session upkeep, account management,
// schedule and note CRUD, and data export.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/arvo-app/arvo/internal/common"
	"github.com/arvo-app/arvo/internal/dbx"
	"github.com/arvo-app/arvo/internal/logging"
	"github.com/arvo-app/arvo/internal/models"
	"github.com/arvo-app/arvo/internal/repositories/session"
	"github.com/arvo-app/arvo/internal/repositories/users"
)

// RegisterParams is the input of AuthService.Register.
type RegisterParams struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// AuthService defines authentication and session operations.
//
// Contract:
//   - Register: validate input, enforce username uniqueness, create the
//     account and open a session for it.
//   - Login: plain credential comparison, open a session.
//   - Logout: clear the session pointer.
//   - CurrentUser: the session copy, or common.ErrNotLoggedIn.
//   - ChangePassword: verify the current password, store the new one and
//     refresh the session copy.
//
// Validation failures are returned as common sentinel errors, never panics.
type AuthService interface {
	Register(ctx context.Context, p RegisterParams) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	ChangePassword(ctx context.Context, current, newPassword, confirm string) error
}

type authService struct {
	db  *sql.DB
	log logging.Logger
}

// NewAuthService constructs an AuthService bound to the given DB.
func NewAuthService(db *sql.DB, log logging.Logger) AuthService {
	return &authService{db: db, log: log}
}

func (a *authService) userRepo(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (a *authService) sessionRepo(db dbx.DBTX) session.Repository {
	return session.NewSQLiteRepository(db)
}

func (a *authService) Register(ctx context.Context, p RegisterParams) (*models.User, error) {
	if p.Username == "" || p.Email == "" || p.Password == "" || p.ConfirmPassword == "" {
		return nil, fmt.Errorf("%w: all fields are required", common.ErrValidation)
	}
	if p.Password != p.ConfirmPassword {
		return nil, common.ErrPasswordMismatch
	}

	_, err := a.userRepo(a.db).GetByUsername(ctx, p.Username)
	if err == nil {
		return nil, common.ErrUsernameTaken
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	u := &models.User{
		ID:        common.NewID(),
		Username:  p.Username,
		Email:     p.Email,
		Password:  p.Password,
		Name:      p.Username,
		Role:      "Student",
		CreatedAt: time.Now(),
	}

	err = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := a.userRepo(tx).Add(ctx, u); err != nil {
			return err
		}
		return a.sessionRepo(tx).Set(ctx, u.Clone())
	})
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	a.log.Info(ctx, "user registered", "id", u.ID, "username", u.Username)
	return u, nil
}

func (a *authService) Login(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrValidation)
	}

	u, err := a.userRepo(a.db).GetByUsername(ctx, username)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if u.Password != password {
		return nil, common.ErrInvalidCredentials
	}

	if err := a.sessionRepo(a.db).Set(ctx, u.Clone()); err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	a.log.Info(ctx, "user logged in", "id", u.ID, "username", u.Username)
	return u, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.sessionRepo(a.db).Clear(ctx)
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	u, err := a.sessionRepo(a.db).Get(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, common.ErrNotLoggedIn
	}
	return u, nil
}

func (a *authService) ChangePassword(ctx context.Context, current, newPassword, confirm string) error {
	cu, err := a.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if cu.Password != current {
		return common.ErrWrongPassword
	}
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", common.ErrValidation)
	}
	if newPassword != confirm {
		return common.ErrPasswordMismatch
	}

	// Re-read the stored record so the update replaces the authoritative
	// copy, not a possibly stale session snapshot of other fields.
	u, err := a.userRepo(a.db).GetByID(ctx, cu.ID)
	if err != nil {
		return err
	}
	u.Password = newPassword

	err = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := a.userRepo(tx).Update(ctx, u); err != nil {
			return err
		}
		return a.sessionRepo(tx).Set(ctx, u.Clone())
	})
	if err != nil {
		return fmt.Errorf("password change failed: %w", err)
	}

	a.log.Info(ctx, "password changed", "id", u.ID)
	return nil
}
