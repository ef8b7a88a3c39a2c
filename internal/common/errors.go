// Package common defines shared constants and sentinel errors used across
// Arvo layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Validation errors. These are rejection reasons surfaced to the user,
	// never fatal conditions.
	ErrValidation       = errors.New("validation error")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrPasswordMismatch = errors.New("passwords do not match")

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrNotLoggedIn        = errors.New("no active session")
)
