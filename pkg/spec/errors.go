package spec

import (
	"errors"
	"fmt"
)

// Code is a machine-readable category for a spec error
type Code string

// Spec error categories
const (
	CodeMalformedNested   Code = "malformed-nested"
	CodeDuplicateField    Code = "duplicate-field"
	CodeUnknownType       Code = "unknown-type"
	CodeEmptyData         Code = "empty-data"
	CodeInvalidWeight     Code = "invalid-weight"
	CodeCircularReference Code = "circular-reference"
	CodeMissingReference  Code = "missing-reference"
	CodeAmbiguousAlias    Code = "ambiguous-alias"
	CodeConflictingConfig Code = "conflicting-config"
	CodeInvalidSpec       Code = "invalid-spec"
)

// Error represents a structured specification error
type Error struct {
	// Code is a machine-readable error code
	Code Code

	// Message is a human-readable error message
	Message string

	// Err is the underlying error, if any
	Err error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new spec error
func NewError(code Code, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Errorf creates a new spec error with a formatted message
func Errorf(code Code, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsCode checks if an error is a spec error with the given code
func IsCode(err error, code Code) bool {
	var specErr *Error
	if errors.As(err, &specErr) {
		return specErr.Code == code
	}
	return false
}
