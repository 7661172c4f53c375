package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDataUnavailable means the source file is missing, unreadable, or
	// empty after pruning. Fatal at startup: there is nothing to render.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrMalformedField means a field failed to parse per its expected
	// format. Surfaced per offending record, not fatal for the whole load.
	ErrMalformedField = errors.New("malformed field")
)

// FieldError reports a single unparseable field on a single record.
// It wraps ErrMalformedField so callers can match with errors.Is.
type FieldError struct {
	Row   int    // zero-based position in the loaded record set
	Field string // column name, e.g. "Weekly Fee"
	Value string // offending raw value
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("row %d: %s %q: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func newFieldError(row int, field, value string, err error) *FieldError {
	return &FieldError{Row: row, Field: field, Value: value, Err: fmt.Errorf("%w: %v", ErrMalformedField, err)}
}
