package supplier

import (
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/wehubfusion/Daedalus/pkg/spec"
)

// Caster coerces a supplied value into another representation
type Caster func(value interface{}) interface{}

var titleCaser = cases.Title(language.English)

var casters = map[string]Caster{
	"int":    func(v interface{}) interface{} { return cast.ToInt(v) },
	"float":  func(v interface{}) interface{} { return cast.ToFloat64(v) },
	"string": func(v interface{}) interface{} { return cast.ToString(v) },
	"lower":  func(v interface{}) interface{} { return strings.ToLower(cast.ToString(v)) },
	"upper":  func(v interface{}) interface{} { return strings.ToUpper(cast.ToString(v)) },
	"title":  func(v interface{}) interface{} { return titleCaser.String(cast.ToString(v)) },
	"trim":   func(v interface{}) interface{} { return strings.TrimSpace(cast.ToString(v)) },
}

// CasterFor looks up a caster by name
func CasterFor(name string) (Caster, error) {
	caster, ok := casters[name]
	if !ok {
		return nil, spec.Errorf(spec.CodeConflictingConfig, "unknown caster: %s", name)
	}
	return caster, nil
}

// casting applies a caster to each value of the wrapped supplier. Lists are
// cast element-wise.
type casting struct {
	wrapped ValueSupplier
	caster  Caster
}

// Next implements ValueSupplier
func (s *casting) Next(iteration int) interface{} {
	value := s.wrapped.Next(iteration)
	if list, ok := value.([]interface{}); ok {
		out := make([]interface{}, len(list))
		for i, elem := range list {
			out[i] = s.caster(elem)
		}
		return out
	}
	return s.caster(value)
}

// Cast wraps a supplier so every value passes through the named caster
func Cast(wrapped ValueSupplier, name string) (ValueSupplier, error) {
	caster, err := CasterFor(name)
	if err != nil {
		return nil, err
	}
	return &casting{wrapped: wrapped, caster: caster}, nil
}

// CastFromConfig wraps the supplier with the caster named by the cast config
// key, when present
func CastFromConfig(wrapped ValueSupplier, config map[string]interface{}) (ValueSupplier, error) {
	name, ok := config["cast"]
	if !ok {
		return wrapped, nil
	}
	return Cast(wrapped, cast.ToString(name))
}
