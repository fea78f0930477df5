package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateEmail is returned when signing up with an email that
	// already has a credential record.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrMissingCredentials is returned when login is attempted with an
	// empty email or password.
	ErrMissingCredentials = errors.New("email and password required")
	// ErrUserNotFound is returned when no credential record matches the
	// login email.
	ErrUserNotFound = errors.New("no account found for this email")
	// ErrInvalidPassword is returned on a password mismatch.
	ErrInvalidPassword = errors.New("incorrect password")
)

// ValidationError reports malformed or missing signup input. It is
// recoverable: the caller shows the message inline and keeps the form.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
