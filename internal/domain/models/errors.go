package models

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that a referenced document does not exist. Callers
// wrap it with the entity description, e.g. fmt.Errorf("inventory %s: %w", ...).
var ErrNotFound = errors.New("not found")

// ValidationError describes rejected input. It is always detected before
// any write happens and surfaces as HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
