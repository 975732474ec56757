// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// Domain errors for authentication operations.
// These errors represent business rule failures and are translated into the
// HTTP error taxonomy by the transport layer.
var (
	// ErrEmailAlreadyExists indicates that a user with the given email already exists.
	ErrEmailAlreadyExists = errors.New("email already registered")

	// ErrUsernameAlreadyExists indicates that the username is already taken.
	ErrUsernameAlreadyExists = errors.New("username already taken")

	// ErrUserNotFound indicates that no user was found with the given criteria.
	ErrUserNotFound = errors.New("user not found")

	// ErrAlreadyVerified indicates that the email address was verified earlier.
	ErrAlreadyVerified = errors.New("email is already verified")

	// ErrNoCode indicates that no verification challenge is outstanding.
	ErrNoCode = errors.New("no verification code found")

	// ErrCodeExpired indicates that the verification PIN passed its expiry.
	ErrCodeExpired = errors.New("verification code has expired")

	// ErrInvalidCode indicates that the presented verification PIN does not match.
	ErrInvalidCode = errors.New("invalid verification code")

	// ErrInvalidPin indicates an absent, expired or mismatching reset PIN.
	// Reset failures are deliberately collapsed into one error so callers
	// cannot probe which check failed.
	ErrInvalidPin = errors.New("invalid or expired reset PIN")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailNotVerified indicates correct credentials on an unverified account.
	ErrEmailNotVerified = errors.New("email not verified")

	// ErrAdminExists indicates that the one-time admin bootstrap already ran.
	ErrAdminExists = errors.New("an admin user has already been created")
)
