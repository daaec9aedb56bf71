// Package common defines shared constants and sentinel errors used across
// the healthlog server layers. Callers should use errors.Is to match these
// values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Request-shape errors detected after validation.
	ErrNoFieldsToUpdate = errors.New("no fields to update")

	// Auth errors (invalid, malformed or expired token).
	ErrInvalidToken = errors.New("invalid or expired token")

	// Password reset lifecycle errors. Unknown and expired tokens share
	// this value so callers cannot tell them apart.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)

// NotFoundError names the resource that was looked up. It matches
// ErrorNotFound with errors.Is.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrorNotFound
}

// NewNotFound returns a NotFoundError for the given resource name.
func NewNotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}
