package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
)

// Errors specific to the document-generation engine.
var (
	// ErrUnknownField: a submission references a field_id that no schema table defines.
	ErrUnknownField = errors.New("unknown field")
	// ErrFieldFormat: a submitted value fails its definition's validation regex.
	ErrFieldFormat = errors.New("value does not match field format")
	// ErrMissingOrderDate: the template has no {{ order_date }} placeholder.
	ErrMissingOrderDate = errors.New("template has no order_date placeholder")
	// ErrBadDocument: the template file is not a readable docx package.
	ErrBadDocument = errors.New("not a valid docx package")
	// ErrNoMarkerRow: the first table has no row with the "RC" sentinel prefix.
	ErrNoMarkerRow = errors.New("table marker row not found")
	// ErrDuplicateSummable: a template declares more than one summable column.
	ErrDuplicateSummable = errors.New("more than one summable column")
)

// SubmissionError reports the first failing field of a validation pass.
// Err is one of ErrUnknownField or ErrFieldFormat; Message carries the
// definition's error_text when present.
type SubmissionError struct {
	FieldID string
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("field %q: %s", e.FieldID, e.Message)
	}
	return fmt.Sprintf("field %q: %v", e.FieldID, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// NewSubmissionError creates a SubmissionError for a single field.
func NewSubmissionError(fieldID string, err error, message string) *SubmissionError {
	return &SubmissionError{FieldID: fieldID, Err: err, Message: message}
}

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
