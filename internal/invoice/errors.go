package invoice

import (
	"errors"
	"strings"
)

// ErrEmptyResult is returned when neither the store nor the batch holds usable rows.
var ErrEmptyResult = errors.New("invoice: no usable invoice data")

// SchemaError reports a batch that lacks required columns.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return "invoice: missing required columns: " + strings.Join(e.Missing, ", ")
}

// ReadError reports a persisted store that exists but cannot be parsed.
type ReadError struct {
	Source string
	Err    error
}

func (e *ReadError) Error() string {
	return "invoice: read " + e.Source + ": " + e.Err.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
