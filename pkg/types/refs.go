package types

import (
	"github.com/spf13/cast"

	"github.com/wehubfusion/Daedalus/pkg/registry"
	"github.com/wehubfusion/Daedalus/pkg/spec"
	"github.com/wehubfusion/Daedalus/pkg/supplier"
)

// registerRefs registers the reference-indirection types
func registerRefs(reg *registry.Registry) {
	reg.RegisterType(TypeRef, refFactory)
	reg.RegisterType(TypeWeightedRef, weightedRefFactory)
	reg.RegisterType(TypeConfigRef, configRefFactory)
}

// refFactory resolves a single named field or refs entry. The name comes
// from ref or, as shorthand, from data.
func refFactory(fieldSpec *spec.FieldSpec, loader registry.Loader) (supplier.ValueSupplier, error) {
	name := fieldSpec.Ref
	if name == "" {
		name = cast.ToString(fieldSpec.Data)
	}
	if name == "" {
		return nil, spec.Errorf(spec.CodeMissingReference, "ref type requires a ref or data key naming the target")
	}
	return loader.Get(name)
}

// weightedRefFactory builds a weighted choice over ref names and
// dereferences the chosen ref per iteration. Every referenced name is
// resolved eagerly so a bad reference fails at build time.
func weightedRefFactory(fieldSpec *spec.FieldSpec, loader registry.Loader) (supplier.ValueSupplier, error) {
	weights, ok := fieldSpec.Data.(map[string]interface{})
	if !ok {
		return nil, spec.Errorf(spec.CodeInvalidSpec, "weighted_ref data must map ref names to weights, got %T", fieldSpec.Data)
	}

	keys, err := supplier.Weighted(weights)
	if err != nil {
		return nil, err
	}

	suppliers := make(map[string]supplier.ValueSupplier, len(weights))
	for name := range weights {
		ref, err := loader.Get(name)
		if err != nil {
			return nil, err
		}
		suppliers[name] = ref
	}

	built, err := supplier.WeightedRefs(keys, suppliers)
	if err != nil {
		return nil, err
	}

	config, err := loader.Config(fieldSpec)
	if err != nil {
		return nil, err
	}
	return wrapCount(built, config)
}

// configRefFactory rejects direct use: config_ref entries only carry shared
// configuration for other fields
func configRefFactory(fieldSpec *spec.FieldSpec, _ registry.Loader) (supplier.ValueSupplier, error) {
	return nil, spec.Errorf(spec.CodeConflictingConfig, "config_ref entries are not generators; reference them via the config_ref config key")
}
