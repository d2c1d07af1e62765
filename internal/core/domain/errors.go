package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Concrete errors below wrap exactly one of these so the
// transport layer can map them with errors.Is.
var (
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrUnauthenticated = errors.New("authentication required")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrAlreadyExists   = errors.New("already exists")
)

var (
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrBusinessNotFound = fmt.Errorf("business %w", ErrNotFound)
	ErrItemNotFound     = fmt.Errorf("item %w", ErrNotFound)
	ErrNotInCart        = fmt.Errorf("item not in cart: %w", ErrNotFound)

	ErrUserExists     = fmt.Errorf("user %w", ErrAlreadyExists)
	ErrBusinessExists = fmt.Errorf("business name %w", ErrAlreadyExists)

	// ErrBusinessNotOwned collapses "does not exist" and "exists but belongs
	// to someone else" into a single outcome.
	ErrBusinessNotOwned = fmt.Errorf("business not found or not owned: %w", ErrUnauthorized)

	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AccessDeniedError is returned by the ownership predicates.
type AccessDeniedError struct {
	Resource string
	Reason   string
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Resource, e.Reason)
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrUnauthorized
}

// ValidationError reports malformed input to a core operation.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + " " + e.Msg
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Invalid is shorthand for building a ValidationError.
func Invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}
