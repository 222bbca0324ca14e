package note

import (
	"errors"
	"strings"
)

var (
	// ErrValidation marks malformed or out-of-bounds client input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when no record exists for a note id.
	ErrNotFound = errors.New("note not found")
	// ErrStorage wraps any failure of the blob or record store.
	ErrStorage = errors.New("storage failure")
)

// ValidationError carries one message per failing field.
type ValidationError struct {
	Messages []string
}

func NewValidationError(msgs ...string) *ValidationError {
	return &ValidationError{Messages: msgs}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
