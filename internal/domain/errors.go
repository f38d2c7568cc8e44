package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound             = errors.New("not found")
	ErrValidation           = errors.New("validation error")
	ErrEmptySelection       = errors.New("empty selection")
	ErrInvalidTransition    = errors.New("invalid transition")
	ErrImportNoRows         = errors.New("import produced no usable rows")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrSupersededLoad       = errors.New("superseded by a newer load")
	ErrStorageCorrupt       = errors.New("storage corrupt")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// TransitionError rejects a session operation that is not allowed in the
// current state. It unwraps to ErrInvalidTransition.
type TransitionError struct {
	Op    string
	State SessionState
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: not allowed in state %s", e.Op, e.State)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
