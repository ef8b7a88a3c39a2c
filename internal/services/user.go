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
	"github.com/arvo-app/arvo/internal/repositories/notes"
	"github.com/arvo-app/arvo/internal/repositories/schedules"
	"github.com/arvo-app/arvo/internal/repositories/session"
	"github.com/arvo-app/arvo/internal/repositories/users"
)

// ProfileParams carries editable profile fields.
type ProfileParams struct {
	Name        string
	Email       string
	Institution string
	Major       string
	Bio         string
}

// UserService defines account-level operations beyond authentication.
type UserService interface {
	// UpdateProfile replaces the profile fields of the user with the given
	// id. When that user is the current session user, the session copy is
	// refreshed in the same transaction.
	UpdateProfile(ctx context.Context, id string, p ProfileParams) (*models.User, error)

	// DeleteAccount removes the user and cascades to all owned schedules and
	// notes, clearing the session pointer when it referenced this user. The
	// whole cascade is atomic: either everything is removed or nothing is.
	DeleteAccount(ctx context.Context, id string) error

	// ExportUserData assembles a consistent snapshot of one user's data.
	ExportUserData(ctx context.Context, id string) (*models.ExportBundle, error)
}

type userService struct {
	db  *sql.DB
	log logging.Logger
}

// NewUserService constructs a UserService bound to the given DB.
func NewUserService(db *sql.DB, log logging.Logger) UserService {
	return &userService{db: db, log: log}
}

func (s *userService) UpdateProfile(ctx context.Context, id string, p ProfileParams) (*models.User, error) {
	u, err := users.NewSQLiteRepository(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.Name = p.Name
	u.Email = p.Email
	u.Institution = p.Institution
	u.Major = p.Major
	u.Bio = p.Bio

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := users.NewSQLiteRepository(tx).Update(ctx, u); err != nil {
			return err
		}

		sessionRepo := session.NewSQLiteRepository(tx)
		cu, err := sessionRepo.Get(ctx)
		if err != nil {
			return err
		}
		if cu != nil && cu.ID == id {
			return sessionRepo.Set(ctx, u.Clone())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("profile update failed: %w", err)
	}

	s.log.Info(ctx, "profile updated", "id", id)
	return u, nil
}

func (s *userService) DeleteAccount(ctx context.Context, id string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := users.NewSQLiteRepository(tx).Delete(ctx, id); err != nil {
			return err
		}
		if err := schedules.NewSQLiteRepository(tx).DeleteByUser(ctx, id); err != nil {
			return err
		}
		if err := notes.NewSQLiteRepository(tx).DeleteByUser(ctx, id); err != nil {
			return err
		}

		sessionRepo := session.NewSQLiteRepository(tx)
		cu, err := sessionRepo.Get(ctx)
		if err != nil {
			return err
		}
		if cu != nil && cu.ID == id {
			return sessionRepo.Clear(ctx)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("account deletion failed: %w", err)
	}

	s.log.Info(ctx, "account deleted", "id", id)
	return nil
}

func (s *userService) ExportUserData(ctx context.Context, id string) (*models.ExportBundle, error) {
	bundle := &models.ExportBundle{ExportDate: time.Now().UTC()}

	// Read everything inside one transaction so the snapshot is consistent.
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		u, err := users.NewSQLiteRepository(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}
		bundle.User = *u

		if bundle.Schedules, err = schedules.NewSQLiteRepository(tx).ListByUser(ctx, id); err != nil {
			return err
		}
		bundle.Notes, err = notes.NewSQLiteRepository(tx).ListByUser(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("export failed: %w", err)
	}

	if bundle.Schedules == nil {
		bundle.Schedules = []models.Schedule{}
	}
	if bundle.Notes == nil {
		bundle.Notes = []models.Note{}
	}
	return bundle, nil
}
