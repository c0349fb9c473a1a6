// Package validation checks request and value structs with validator tags
// and reports failures as field-level errors.
package validation

import (
	"fmt"
	"strings"
)

// FieldError is one failed constraint.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Error is returned when input fails validation. Callers should surface it
// to the user as-is; nothing was generated or stored.
type Error struct {
	Message string
	Fields  []FieldError
	Cause   error
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("validation error: %s: %s", e.Message, strings.Join(parts, "; "))
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New returns an Error for a single field.
func New(field, message string) *Error {
	return &Error{
		Message: "invalid request",
		Fields:  []FieldError{{Field: field, Tag: "custom", Message: message}},
	}
}
