package types

import (
	"github.com/spf13/cast"

	"github.com/wehubfusion/Daedalus/pkg/evaluate"
	"github.com/wehubfusion/Daedalus/pkg/registry"
	"github.com/wehubfusion/Daedalus/pkg/spec"
	"github.com/wehubfusion/Daedalus/pkg/supplier"
)

// registerCalculate registers the calculate composite type
func registerCalculate(reg *registry.Registry) {
	reg.RegisterType(TypeCalculate, calculateFactory)
}

// calculateSupplier evaluates a formula over the per-iteration values of
// its aliased suppliers. Every dependency is consulted with the same
// iteration index the composite receives.
type calculateSupplier struct {
	suppliers map[string]supplier.ValueSupplier
	formula   string
	engine    evaluate.Engine
}

// Next implements supplier.ValueSupplier
func (s *calculateSupplier) Next(iteration int) interface{} {
	bindings := make(map[string]interface{}, len(s.suppliers))
	for alias, sup := range s.suppliers {
		bindings[alias] = sup.Next(iteration)
	}
	result, err := s.engine.Evaluate(s.formula, bindings)
	if err != nil {
		// the formula was accepted at build time; a failure here means a
		// supplied value broke it, which is fatal for the record stream
		panic(err)
	}
	return result
}

// calculateFactory wires alias mappings from refs or fields into formula
// bindings. Exactly one of refs and fields must be present; aliases that
// collide with evaluator reserved words fail eagerly.
func calculateFactory(fieldSpec *spec.FieldSpec, loader registry.Loader) (supplier.ValueSupplier, error) {
	if fieldSpec.Refs == nil && fieldSpec.Fields == nil {
		return nil, spec.Errorf(spec.CodeInvalidSpec, "calculate requires one of refs or fields")
	}
	if fieldSpec.Refs != nil && fieldSpec.Fields != nil {
		return nil, spec.Errorf(spec.CodeConflictingConfig, "calculate accepts only one of refs or fields")
	}
	if fieldSpec.Formula == "" {
		return nil, spec.Errorf(spec.CodeInvalidSpec, "calculate requires a formula")
	}

	mappings, err := aliasMappings(fieldSpec.Refs)
	if err != nil {
		return nil, err
	}
	fieldMappings, err := aliasMappings(fieldSpec.Fields)
	if err != nil {
		return nil, err
	}
	for name, alias := range fieldMappings {
		mappings[name] = alias
	}
	if len(mappings) == 0 {
		return nil, spec.Errorf(spec.CodeInvalidSpec, "calculate refs or fields are empty")
	}

	suppliers := make(map[string]supplier.ValueSupplier, len(mappings))
	for name, alias := range mappings {
		if evaluate.IsReservedWord(alias) {
			return nil, spec.Errorf(spec.CodeAmbiguousAlias, "alias %s collides with an evaluator reserved word", alias)
		}
		dep, err := loader.Get(name)
		if err != nil {
			return nil, err
		}
		suppliers[alias] = dep
	}

	return &calculateSupplier{
		suppliers: suppliers,
		formula:   fieldSpec.Formula,
		engine:    evaluate.NewEngine(),
	}, nil
}

// aliasMappings normalizes refs or fields declarations into a mapping of
// field-or-ref name to alias. A list aliases every name to itself.
func aliasMappings(raw interface{}) (map[string]string, error) {
	mappings := make(map[string]string)
	switch v := raw.(type) {
	case nil:
	case []interface{}:
		for _, name := range v {
			s := cast.ToString(name)
			mappings[s] = s
		}
	case map[string]interface{}:
		for name, alias := range v {
			mappings[name] = cast.ToString(alias)
		}
	default:
		return nil, spec.Errorf(spec.CodeInvalidSpec, "calculate refs and fields must be a list or mapping, got %T", raw)
	}
	return mappings, nil
}
