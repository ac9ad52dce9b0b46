package schema

import "fmt"

// SchemaError represents a schema-related error
type SchemaError struct {
	Message string
	Code    string
	Err     error
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ParseError creates a schema parsing error
func ParseError(err error) *SchemaError {
	return &SchemaError{
		Message: "schema parsing failed",
		Code:    "SCHEMA_PARSE_ERROR",
		Err:     err,
	}
}

// ValidationFailedError creates a validation error listing every violation
func ValidationFailedError(specType string, errors []ValidationError) *SchemaError {
	msg := fmt.Sprintf("failed to validate spec type %s with %d errors", specType, len(errors))
	for _, e := range errors {
		msg += fmt.Sprintf("; %s: %s", e.Path, e.Message)
	}
	return &SchemaError{
		Message: msg,
		Code:    "VALIDATION_FAILED",
	}
}
