package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/arvo-app/arvo/internal/common"
	"github.com/arvo-app/arvo/internal/services"
	"github.com/gosimple/slug"
)

// Profile shows the current profile, or edits it when arg is "edit".
// During an edit, empty answers keep the current value.
func (a *App) Profile(ctx context.Context, arg string) error {
	u, ok := a.requireUser()
	if !ok {
		return common.ErrNotLoggedIn
	}

	if arg != "edit" {
		printlnFn("Username:    " + u.Username)
		printlnFn("Name:        " + u.Name)
		printlnFn("Email:       " + u.Email)
		printlnFn("Institution: " + u.Institution)
		printlnFn("Major:       " + u.Major)
		printlnFn("Bio:         " + u.Bio)
		printlnFn("Role:        " + u.Role)
		printlnFn("Member since " + u.CreatedAt.Format("2006-01-02"))
		return nil
	}

	printlnFn("Editing profile (leave a field empty to keep it)")

	p := services.ProfileParams{
		Name:        u.Name,
		Email:       u.Email,
		Institution: u.Institution,
		Major:       u.Major,
		Bio:         u.Bio,
	}

	fields := []struct {
		prompt string
		dst    *string
	}{
		{fmt.Sprintf("Name [%s]", u.Name), &p.Name},
		{fmt.Sprintf("Email [%s]", u.Email), &p.Email},
		{fmt.Sprintf("Institution [%s]", u.Institution), &p.Institution},
		{fmt.Sprintf("Major [%s]", u.Major), &p.Major},
		{fmt.Sprintf("Bio [%s]", u.Bio), &p.Bio},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, os.Stdout)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = v
		}
	}

	updated, err := a.users.UpdateProfile(ctx, u.ID, p)
	if err != nil {
		printlnFn("Failed to update profile:", err.Error())
		return err
	}

	a.current = updated
	printlnFn("Profile updated")
	return nil
}

// Password changes the current user's password after verifying the old one.
func (a *App) Password(ctx context.Context) error {
	if _, ok := a.requireUser(); !ok {
		return common.ErrNotLoggedIn
	}

	current, err := getPassword("Current password", os.Stdout)
	if err != nil {
		return err
	}
	newPassword, err := getPassword("New password", os.Stdout)
	if err != nil {
		return err
	}
	confirm, err := getPassword("Confirm new password", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.auth.ChangePassword(ctx, current, newPassword, confirm); err != nil {
		switch {
		case errors.Is(err, common.ErrWrongPassword):
			printlnFn("Current password is incorrect")
		case errors.Is(err, common.ErrPasswordMismatch):
			printlnFn("New passwords do not match")
		case errors.Is(err, common.ErrValidation):
			printlnFn(err.Error())
		default:
			printlnFn("Password change failed:", err.Error())
		}
		return err
	}

	printlnFn("Password changed")
	return nil
}

// Export writes all the user's data to an indented JSON file in the working
// directory and prints the file name.
func (a *App) Export(ctx context.Context) error {
	u, ok := a.requireUser()
	if !ok {
		return common.ErrNotLoggedIn
	}

	bundle, err := a.users.ExportUserData(ctx, u.ID)
	if err != nil {
		printlnFn("Export failed:", err.Error())
		return err
	}

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		printlnFn("Export failed:", err.Error())
		return err
	}

	name := fmt.Sprintf("arvo-data-%s-%s.json", slug.Make(u.Username), time.Now().Format("2006-01-02"))
	if err := os.WriteFile(name, data, 0o600); err != nil {
		printlnFn("Failed to write export file:", err.Error())
		return err
	}

	printlnFn("Exported to " + name)
	return nil
}

// DeleteAccount removes the account and all its data after an explicit
// confirmation, then ends the session.
func (a *App) DeleteAccount(ctx context.Context) error {
	u, ok := a.requireUser()
	if !ok {
		return common.ErrNotLoggedIn
	}

	answer, err := getSimpleText(a.reader,
		"This permanently deletes your account, schedules and notes. Type 'yes' to confirm", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		printlnFn("Aborted")
		return nil
	}

	if err := a.users.DeleteAccount(ctx, u.ID); err != nil {
		printlnFn("Failed to delete account:", err.Error())
		return err
	}

	a.current = nil
	a.stopNotifier()
	printlnFn("Account deleted")
	return nil
}
