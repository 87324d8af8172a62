package schedule

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched by every validation failure.
var ErrInvalidInput = errors.New("invalid schedule input")

// ValidationError names the field and the broken rule.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
