// ABOUTME: Error types shared by filtering, forms and formatting
// ABOUTME: ValidationError for bad input values, FormatError for display failures
package models

import (
	"fmt"
	"strings"
)

// ValidationError reports a malformed criteria or form value.
type ValidationError struct {
	Field  string `json:"field"`
	Value  string `json:"value,omitempty"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func invalid(field, value, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// ValidationErrors collects field errors from a single form submission.
type ValidationErrors []*ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Field returns the error for the named field, if any.
func (es ValidationErrors) Field(name string) *ValidationError {
	for _, e := range es {
		if e.Field == name {
			return e
		}
	}
	return nil
}

// FormatError reports a value the presentation layer cannot display.
type FormatError struct {
	Kind  string // "currency", "locale" or "date"
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot format %s %q: %v", e.Kind, e.Value, e.Err)
	}
	return fmt.Sprintf("cannot format %s %q", e.Kind, e.Value)
}

func (e *FormatError) Unwrap() error { return e.Err }
