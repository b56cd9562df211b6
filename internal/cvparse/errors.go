package cvparse

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedOutput = errors.New("malformed model output")
	ErrSchemaViolation = errors.New("schema violation")
)

const rawPreviewLen = 200

// MalformedOutputError means the model reply could not be parsed at all.
// Raw holds the cleaned text for diagnostics.
type MalformedOutputError struct {
	Raw string
}

func (e *MalformedOutputError) Error() string {
	preview := e.Raw
	if len(preview) > rawPreviewLen {
		preview = preview[:rawPreviewLen] + "..."
	}
	return fmt.Sprintf("malformed model output: not valid JSON: %q", preview)
}

func (e *MalformedOutputError) Is(target error) bool {
	return target == ErrMalformedOutput
}

// Violation is a single schema failure at a json dotted path.
type Violation struct {
	Field   string
	Message string
}

// SchemaViolationError means the reply parsed but does not fit the CV shape.
// Field and Message describe the first violation in path order.
type SchemaViolationError struct {
	Field      string
	Message    string
	Violations []Violation
}

func (e *SchemaViolationError) Error() string {
	if len(e.Violations) > 1 {
		return fmt.Sprintf("schema violation at %s: %s (and %d more)", e.Field, e.Message, len(e.Violations)-1)
	}
	return fmt.Sprintf("schema violation at %s: %s", e.Field, e.Message)
}

func (e *SchemaViolationError) Is(target error) bool {
	return target == ErrSchemaViolation
}

func newSchemaViolation(violations []Violation) *SchemaViolationError {
	return &SchemaViolationError{
		Field:      violations[0].Field,
		Message:    violations[0].Message,
		Violations: violations,
	}
}
