package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors. Typed errors below match them through errors.Is.
var (
	// ErrValidation marks input rejected before any write was attempted.
	ErrValidation = errors.New("validation failed")
	// ErrReference marks a foreign key that does not resolve.
	ErrReference = errors.New("unresolved reference")
	// ErrStorageUnavailable is returned by stores used before Init or after Close.
	ErrStorageUnavailable = errors.New("storage unavailable: store not initialized")
	// ErrConflict is returned when a unique index would hold two records.
	ErrConflict = errors.New("unique index conflict")
	// ErrUnknownCollection is returned for collections absent from Schema.
	ErrUnknownCollection = errors.New("unknown collection")
)

// ValidationError reports a missing required field or an out-of-domain value.
type ValidationError struct {
	Entity Collection
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Entity, e.Field, e.Reason)
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ReferenceError reports a foreign key pointing at a missing (or wrongly typed) row.
type ReferenceError struct {
	Entity Collection
	Field  string
	Target Collection
	ID     string
	Reason string
}

func (e *ReferenceError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "not found"
	}
	return fmt.Sprintf("%s.%s: %s %q %s", e.Entity, e.Field, e.Target, e.ID, reason)
}

// Is matches ErrReference.
func (e *ReferenceError) Is(target error) bool { return target == ErrReference }

// ConflictError reports a unique index violation on put.
type ConflictError struct {
	Entity     Collection
	Field      string
	Value      string
	ExistingID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s.%s=%q already held by %q", e.Entity, e.Field, e.Value, e.ExistingID)
}

// Is matches ErrConflict.
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

func invalid(entity Collection, field, format string, args ...any) error {
	return &ValidationError{Entity: entity, Field: field, Reason: fmt.Sprintf(format, args...)}
}
