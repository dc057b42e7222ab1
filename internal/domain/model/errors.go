package model

import (
	"errors"
	"fmt"
)

// Sentinel errors. Match with errors.Is; use errors.As with *FieldError or
// *RecordError to recover the offending field or record.
var (
	ErrMissingField      = errors.New("missing required field")
	ErrInvalidField      = errors.New("invalid field")
	ErrEmptyBatch        = errors.New("mortgage batch is empty")
	ErrDivisionUndefined = errors.New("division undefined")
	ErrPoolNotFound      = errors.New("mortgage pool not found")
)

// FieldError reports a single mortgage field that is absent or violates its
// constraint.
type FieldError struct {
	kind   error
	Field  string
	Reason string
}

// MissingField returns the error for a required field absent from the record.
func MissingField(field string) *FieldError {
	return &FieldError{kind: ErrMissingField, Field: field}
}

// InvalidField returns the error for a present field that is out of range,
// of the wrong type or not in its allowed set.
func InvalidField(field, reason string) *FieldError {
	return &FieldError{kind: ErrInvalidField, Field: field, Reason: reason}
}

func (e *FieldError) Error() string {
	if errors.Is(e.kind, ErrMissingField) {
		return fmt.Sprintf("missing required field: %s", e.Field)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return e.kind }

// IsMissing reports whether the field was absent rather than invalid.
func (e *FieldError) IsMissing() bool { return errors.Is(e.kind, ErrMissingField) }

// RecordError locates a failure within a batch of mortgages.
type RecordError struct {
	Err   error
	Index int
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("mortgage[%d]: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// DivisionUndefined reports a ratio whose denominator field is zero.
func DivisionUndefined(field string) error {
	return fmt.Errorf("%w: %s is zero", ErrDivisionUndefined, field)
}

// IsValidationError reports whether err stems from bad caller input rather
// than an infrastructure failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidField) ||
		errors.Is(err, ErrEmptyBatch) ||
		errors.Is(err, ErrDivisionUndefined)
}
