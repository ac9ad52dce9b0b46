package types

import (
	"github.com/spf13/cast"

	"github.com/wehubfusion/Daedalus/pkg/registry"
	"github.com/wehubfusion/Daedalus/pkg/spec"
	"github.com/wehubfusion/Daedalus/pkg/supplier"
)

// registerCombine registers the combine and combine-list types
func registerCombine(reg *registry.Registry) {
	reg.RegisterType(TypeCombine, combineFactory)
	reg.RegisterType(TypeCombineList, combineListFactory)
}

// combineFactory joins the per-iteration values of the named refs or fields
func combineFactory(fieldSpec *spec.FieldSpec, loader registry.Loader) (supplier.ValueSupplier, error) {
	names, err := combineNames(fieldSpec)
	if err != nil {
		return nil, err
	}
	return buildCombine(names, fieldSpec, loader)
}

// combineListFactory rotates through several combine definitions: data is a
// list of ref-name lists, one combine per entry
func combineListFactory(fieldSpec *spec.FieldSpec, loader registry.Loader) (supplier.ValueSupplier, error) {
	lists, ok := fieldSpec.Refs.([]interface{})
	if !ok {
		return nil, spec.Errorf(spec.CodeInvalidSpec, "combine-list requires refs as a list of ref-name lists")
	}

	combos := make([]supplier.ValueSupplier, 0, len(lists))
	for _, entry := range lists {
		rawNames, ok := entry.([]interface{})
		if !ok {
			return nil, spec.Errorf(spec.CodeInvalidSpec, "combine-list refs entries must be lists, got %T", entry)
		}
		names := make([]string, len(rawNames))
		for i, name := range rawNames {
			names[i] = cast.ToString(name)
		}
		combo, err := buildCombine(names, fieldSpec, loader)
		if err != nil {
			return nil, err
		}
		combos = append(combos, combo)
	}
	return supplier.Rotate(combos)
}

// combineNames extracts the ordered list of names from refs or fields
func combineNames(fieldSpec *spec.FieldSpec) ([]string, error) {
	source := fieldSpec.Refs
	if source == nil {
		source = fieldSpec.Fields
	}
	raw, ok := source.([]interface{})
	if !ok {
		return nil, spec.Errorf(spec.CodeInvalidSpec, "combine requires refs or fields as a list of names")
	}
	names := make([]string, len(raw))
	for i, name := range raw {
		names[i] = cast.ToString(name)
	}
	return names, nil
}

// buildCombine resolves every name eagerly and wires the combine supplier
// with the configured join behavior
func buildCombine(names []string, fieldSpec *spec.FieldSpec, loader registry.Loader) (supplier.ValueSupplier, error) {
	suppliers := make([]supplier.ValueSupplier, 0, len(names))
	for _, name := range names {
		ref, err := loader.Get(name)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, ref)
	}

	config, err := loader.Config(fieldSpec)
	if err != nil {
		return nil, err
	}
	joinWith := cast.ToString(configValue(config, loader, "join_with", defaultCombineJoinWith))
	asList := isAffirmative(configValue(config, loader, "as_list", defaultCombineAsList))
	return supplier.Combine(suppliers, joinWith, asList)
}
