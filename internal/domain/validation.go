package domain

import (
	"errors"
	"sort"
	"strings"
)

// ErrValidation matches every *ValidationError via errors.Is
var ErrValidation = errors.New("domain: validation failed")

// FieldErrors field name -> user-facing message
type FieldErrors map[string]string

// Add keeps the first message recorded for a field
func (f FieldErrors) Add(field, message string) {
	if _, exists := f[field]; !exists {
		f[field] = message
	}
}

func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// Err returns nil when there are no field errors
func (f FieldErrors) Err() error {
	if f.Empty() {
		return nil
	}
	return &ValidationError{Fields: f}
}

// ValidationError structured result of a failed validation
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// FieldErrorsOf extracts field errors from err, if any
func FieldErrorsOf(err error) (FieldErrors, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields, true
	}
	return nil, false
}
