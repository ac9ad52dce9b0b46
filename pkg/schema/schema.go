// Package schema provides lightweight validation of field specifications
// against per-type schemas. The engine consumes this as a boundary: type
// modules register a SchemaProvider, and strict generation validates each
// field spec before its supplier is built.
package schema

import "encoding/json"

// FieldType represents the expected shape of a schema property
type FieldType string

// Supported property types
const (
	TypeString  FieldType = "STRING"
	TypeNumber  FieldType = "NUMBER"
	TypeBoolean FieldType = "BOOLEAN"
	TypeObject  FieldType = "OBJECT"
	TypeArray   FieldType = "ARRAY"
	TypeAny     FieldType = "ANY"
)

// Schema describes the accepted shape of one field spec
type Schema struct {
	// Type names the field type this schema validates
	Type string `json:"type,omitempty"`

	// Properties describe accepted field-spec keys (data, config entries)
	Properties map[string]*Property `json:"properties,omitempty"`

	// Required lists field-spec keys that must be present
	Required []string `json:"required,omitempty"`
}

// Property represents one accepted key in a field spec or its config
type Property struct {
	Type        FieldType            `json:"type"`
	Description string               `json:"description,omitempty"`
	Enum        []string             `json:"enum,omitempty"`
	Minimum     *float64             `json:"minimum,omitempty"`
	Maximum     *float64             `json:"maximum,omitempty"`
	Properties  map[string]*Property `json:"properties,omitempty"` // for OBJECT
	Items       *Property            `json:"items,omitempty"`      // for ARRAY
	OneOf       []*Property          `json:"oneOf,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationResult contains the outcome of a validation run
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors"`
}

// Parse decodes a schema definition from JSON text
func Parse(data []byte) (*Schema, error) {
	var schema Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, ParseError(err)
	}
	return &schema, nil
}
