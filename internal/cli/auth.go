package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/arvo-app/arvo/internal/common"
	"github.com/arvo-app/arvo/internal/services"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline

// Register prompts for the new account fields and attempts to create it.
// A successful registration opens a session immediately.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Choose a username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	confirm, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}

	u, err := a.auth.Register(ctx, services.RegisterParams{
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUsernameTaken):
			printlnFn("That username is already taken")
		case errors.Is(err, common.ErrPasswordMismatch):
			printlnFn("Passwords do not match")
		case errors.Is(err, common.ErrValidation):
			printlnFn(err.Error())
		default:
			printlnFn("Registration failed:", err.Error())
		}
		return err
	}

	a.current = u
	a.startNotifier(ctx)
	printlnFn(fmt.Sprintf("Welcome, %s!", u.Name))
	return nil
}

// Login prompts for credentials and opens a session on success.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	u, err := a.auth.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) || errors.Is(err, common.ErrValidation) {
			printlnFn("Invalid username or password")
		} else {
			printlnFn("Login failed:", err.Error())
		}
		return err
	}

	a.current = u
	a.startNotifier(ctx)
	printlnFn(fmt.Sprintf("Welcome back, %s!", u.Name))
	return nil
}

// Logout clears the persisted session pointer and stops the reminder
// scheduler.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		printlnFn("Logout failed:", err.Error())
		return err
	}
	a.current = nil
	a.stopNotifier()
	printlnFn("Logged out")
	return nil
}
