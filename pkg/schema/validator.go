package schema

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Validator validates field specs against schemas
type Validator struct{}

// NewValidator creates a new schema validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates a field spec (as a mapping) against a schema and
// returns an error describing every violation when validation fails
func (v *Validator) Validate(specType string, fieldSpec map[string]interface{}, schema *Schema) error {
	result := v.Run(fieldSpec, schema)
	if result.Valid {
		return nil
	}
	return ValidationFailedError(specType, result.Errors)
}

// Run collects all validation errors for the field spec without failing
func (v *Validator) Run(fieldSpec map[string]interface{}, schema *Schema) *ValidationResult {
	result := &ValidationResult{Valid: true, Errors: []ValidationError{}}

	for _, required := range schema.Required {
		if _, ok := fieldSpec[required]; !ok {
			result.Errors = append(result.Errors, ValidationError{
				Path:    required,
				Message: "required key is missing",
			})
		}
	}

	// deterministic error ordering
	keys := make([]string, 0, len(fieldSpec))
	for key := range fieldSpec {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		prop, ok := schema.Properties[key]
		if !ok {
			continue
		}
		result.Errors = append(result.Errors, v.validateValue(fieldSpec[key], prop, key)...)
	}

	if len(result.Errors) > 0 {
		result.Valid = false
	}
	return result
}

func (v *Validator) validateValue(value interface{}, prop *Property, path string) []ValidationError {
	if len(prop.OneOf) > 0 {
		for _, alt := range prop.OneOf {
			if len(v.validateValue(value, alt, path)) == 0 {
				return nil
			}
		}
		return []ValidationError{{Path: path, Message: "value matches no accepted shape"}}
	}

	switch prop.Type {
	case TypeAny, "":
		return nil
	case TypeString:
		s, ok := value.(string)
		if !ok {
			return typeError(path, "string", value)
		}
		if len(prop.Enum) > 0 && !contains(prop.Enum, s) {
			return []ValidationError{{Path: path, Message: fmt.Sprintf("value %q not in enum %v", s, prop.Enum)}}
		}
	case TypeNumber:
		num, ok := toFloat(value)
		if !ok {
			return typeError(path, "number", value)
		}
		if prop.Minimum != nil && num < *prop.Minimum {
			return []ValidationError{{Path: path, Message: fmt.Sprintf("value %v below minimum %v", num, *prop.Minimum)}}
		}
		if prop.Maximum != nil && num > *prop.Maximum {
			return []ValidationError{{Path: path, Message: fmt.Sprintf("value %v above maximum %v", num, *prop.Maximum)}}
		}
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			return typeError(path, "boolean", value)
		}
	case TypeArray:
		list, ok := value.([]interface{})
		if !ok {
			return typeError(path, "array", value)
		}
		if prop.Items != nil {
			var errs []ValidationError
			for i, elem := range list {
				errs = append(errs, v.validateValue(elem, prop.Items, fmt.Sprintf("%s[%d]", path, i))...)
			}
			return errs
		}
	case TypeObject:
		obj, ok := value.(map[string]interface{})
		if !ok {
			return typeError(path, "object", value)
		}
		var errs []ValidationError
		keys := make([]string, 0, len(obj))
		for key := range obj {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			sub, ok := prop.Properties[key]
			if !ok {
				continue
			}
			errs = append(errs, v.validateValue(obj[key], sub, path+"."+key)...)
		}
		return errs
	}
	return nil
}

func typeError(path, expected string, value interface{}) []ValidationError {
	return []ValidationError{{
		Path:    path,
		Message: fmt.Sprintf("expected %s, got %T", expected, value),
	}}
}

func toFloat(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
