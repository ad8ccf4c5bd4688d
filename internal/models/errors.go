package models

import (
	"errors"
	"fmt"
)

// ErrGoalNotFound is returned when a goal does not exist or belongs to a
// different user. The two cases are deliberately indistinguishable.
var ErrGoalNotFound = errors.New("goal not found")

// ErrVersionConflict signals that a concurrent write raced the current
// operation's read snapshot. Callers may retry the whole read-modify-write.
var ErrVersionConflict = errors.New("goal version conflict")

// ValidationError reports malformed input on a single field.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// StoreUnavailableError wraps a collaborator I/O failure. It is never
// retried; the caller surfaces it immediately.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}
