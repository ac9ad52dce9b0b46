package preprocess

import (
	"net/url"
	"strings"

	"github.com/wehubfusion/Daedalus/pkg/spec"
)

// extractParams is the parameter-extraction pass. It strips name:type and
// ?param=value notation out of field keys, pushes the params into the
// field's config, and wraps bare-literal bodies as values specs.
func (p *Pipeline) extractParams(raw spec.RawSpec) (spec.RawSpec, error) {
	updated := make(spec.RawSpec, len(raw))
	for key, body := range raw {
		switch {
		case key == spec.RefsKey:
			refs, ok := body.(map[string]interface{})
			if !ok {
				return nil, spec.Errorf(spec.CodeInvalidSpec, "refs must be a mapping, got %T", body)
			}
			processed, err := p.extractParams(refs)
			if err != nil {
				return nil, err
			}
			updated[spec.RefsKey] = processed
		case key == spec.FieldGroupsKey:
			updated[key] = body
		case strings.Contains(key, "?"):
			if err := updateWithParams(key, body, updated); err != nil {
				return nil, err
			}
		default:
			if err := updateNoParams(key, body, updated); err != nil {
				return nil, err
			}
		}
	}
	return updated, nil
}

// updateWithParams handles keys carrying ?param=value portions
func updateWithParams(key string, body interface{}, updated spec.RawSpec) error {
	newKey, specType, params, err := parseKey(key)
	if err != nil {
		return err
	}
	if _, exists := updated[newKey]; exists {
		return spec.Errorf(spec.CodeDuplicateField, "field %s defined multiple times", newKey)
	}

	field := convertToValuesIfNeeded(body, specType)

	config := make(map[string]interface{})
	if existing, ok := field[spec.ConfigKey].(map[string]interface{}); ok {
		for k, v := range existing {
			config[k] = v
		}
	}
	// name-encoded params are applied last and win on collision
	for k, v := range params {
		config[k] = v
	}
	field[spec.ConfigKey] = config
	if specType != "" {
		field[spec.TypeKey] = specType
	}

	updated[newKey] = field
	return nil
}

// updateNoParams handles keys without params; the key may still carry
// name:type notation
func updateNoParams(key string, body interface{}, updated spec.RawSpec) error {
	newKey := key
	specType := ""
	if idx := strings.Index(key, ":"); idx >= 0 {
		newKey = key[:idx]
		specType = key[idx+1:]
	}
	if _, exists := updated[newKey]; exists {
		return spec.Errorf(spec.CodeDuplicateField, "field %s defined multiple times", newKey)
	}

	if specType == "" {
		if bodyMap, ok := body.(map[string]interface{}); ok {
			if t, ok := bodyMap[spec.TypeKey].(string); ok {
				specType = t
			}
		}
	}

	field := convertToValuesIfNeeded(body, specType)
	if specType != "" {
		field[spec.TypeKey] = specType
	}

	updated[newKey] = field
	return nil
}

// parseKey splits a field key of the form name:type?param=value&... using
// URL query-string decoding for the param portion. Repeated params produce a
// list value, single occurrences a scalar.
func parseKey(key string) (name, specType string, params map[string]interface{}, err error) {
	parts := strings.SplitN(key, "?", 2)
	name = parts[0]
	if idx := strings.Index(name, ":"); idx >= 0 {
		specType = name[idx+1:]
		name = name[:idx]
	}

	query, err := url.ParseQuery(parts[1])
	if err != nil {
		return "", "", nil, spec.NewError(spec.CodeInvalidSpec, "invalid params in field key "+key, err)
	}

	params = make(map[string]interface{}, len(query))
	for param, values := range query {
		param = strings.TrimSpace(param)
		if len(values) == 1 {
			params[param] = values[0]
		} else {
			list := make([]interface{}, len(values))
			for i, v := range values {
				list[i] = v
			}
			params[param] = list
		}
	}
	return name, specType, params, nil
}

// convertToValuesIfNeeded wraps data-only bodies into a canonical values
// spec; spec bodies are shallow-copied so passes never mutate their input
func convertToValuesIfNeeded(body interface{}, specType string) map[string]interface{} {
	if isSpecData(body, specType) {
		return map[string]interface{}{
			spec.TypeKey: spec.TypeValues,
			spec.DataKey: body,
		}
	}
	field := make(map[string]interface{})
	if bodyMap, ok := body.(map[string]interface{}); ok {
		for k, v := range bodyMap {
			field[k] = v
		}
	}
	return field
}

// isSpecData reports whether the body is literal data rather than a field
// spec. A mapping carrying any core key is a spec, an empty mapping is the
// abbreviated field:type?param=value notation, and anything that is not a
// mapping is data.
func isSpecData(body interface{}, specType string) bool {
	if specType == spec.TypeNested {
		return false
	}
	bodyMap, ok := body.(map[string]interface{})
	if !ok {
		return true
	}
	for _, core := range []string{spec.TypeKey, spec.DataKey, spec.ConfigKey, spec.RefKey, spec.RefsKey, spec.FieldsKey} {
		if _, ok := bodyMap[core]; ok {
			return false
		}
	}
	return len(bodyMap) != 0
}
