package domain

import (
	"fmt"
	"strings"
)

// ValidationError carries the field-level messages for a rejected input.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// NewValidationError builds a ValidationError from one or more messages.
func NewValidationError(messages ...string) error {
	return &ValidationError{Messages: messages}
}

// Validationf builds a single-message ValidationError.
func Validationf(format string, args ...any) error {
	return &ValidationError{Messages: []string{fmt.Sprintf(format, args...)}}
}
