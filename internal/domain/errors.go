package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when an entity does not exist. Out-of-tenant
	// entities that do exist are ErrForbidden instead; the existence check
	// always runs first.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when an existing entity belongs to another
	// company than the requesting principal's.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthenticated is returned for missing, malformed or expired tokens.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrEmailTaken is returned on registration with an already used email.
	ErrEmailTaken = errors.New("email already registered")
)

// ValidationError carries the full battery of field errors for a request.
// All accumulated messages are reported together rather than failing on the
// first.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// NewValidationError builds a ValidationError from accumulated messages.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// NotFoundf wraps ErrNotFound with a caller-facing message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}
