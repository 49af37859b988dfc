package parser

import "fmt"

// ParseError indicates a document whose expected structure is missing or
// unreadable.
type ParseError struct {
	Cause error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("parse: %v", e.Cause)
}

func (e ParseError) Unwrap() error {
	return e.Cause
}

// FieldError indicates a single field value that could not be extracted or
// converted.
type FieldError struct {
	Field string
	Value string
	Cause error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("field %s: %q: %v", e.Field, e.Value, e.Cause)
}

func (e FieldError) Unwrap() error {
	return e.Cause
}
