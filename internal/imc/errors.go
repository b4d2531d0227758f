package imc

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is. A ParseError matches both: a value that is not a
// number blocks the action exactly like an out-of-range one.
var (
	ErrValidation = errors.New("validation error")
	ErrParse      = errors.New("parse error")
)

// ValidationError is an out-of-range or missing input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrValidation) true.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Missing returns the ValidationError for a required field left unset.
func Missing(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "is required"}
}

// ParseError is a value that could not be read as a finite number
// (or, for dates, as YYYY-MM-DD).
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q is not a valid value", e.Field, e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is matches both ErrParse and ErrValidation.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse || target == ErrValidation
}
