package spec

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FromJSON decodes a raw specification from JSON text
func FromJSON(data []byte) (RawSpec, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid spec JSON: %w", err)
	}
	return raw, nil
}

// FromYAML decodes a raw specification from YAML text
func FromYAML(data []byte) (RawSpec, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid spec YAML: %w", err)
	}
	normalized, ok := normalizeValue(raw).(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("spec YAML must decode to a mapping")
	}
	return normalized, nil
}

// normalizeValue rewrites decoded YAML shapes so downstream code only ever
// sees map[string]interface{} mappings
func normalizeValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, val := range v {
			out[key] = normalizeValue(val)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, val := range v {
			out[fmt.Sprint(key)] = normalizeValue(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = normalizeValue(val)
		}
		return out
	default:
		return value
	}
}
