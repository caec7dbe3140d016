package domain

import (
	"fmt"
	"strings"
)

type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects per-field messages in the order they were found.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// UniqueConstraintError reports a write that collided with an existing row.
// Target lists the columns of the violated key.
type UniqueConstraintError struct {
	Target []string
	Err    error
}

func (e *UniqueConstraintError) Error() string {
	if e == nil {
		return "unique constraint violated"
	}
	return fmt.Sprintf("unique constraint violated on (%s)", strings.Join(e.Target, ", "))
}

func (e *UniqueConstraintError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
