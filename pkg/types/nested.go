package types

import (
	"github.com/wehubfusion/Daedalus/pkg/registry"
	"github.com/wehubfusion/Daedalus/pkg/spec"
	"github.com/wehubfusion/Daedalus/pkg/supplier"
)

// registerNested registers the nested composite type
func registerNested(reg *registry.Registry) {
	reg.RegisterType(TypeNested, nestedFactory)
}

// nestedSupplier assembles a sub-record per iteration from its inner field
// suppliers, driving every inner field with the same iteration index
type nestedSupplier struct {
	names     []string
	suppliers map[string]supplier.ValueSupplier
}

// Next implements supplier.ValueSupplier
func (s *nestedSupplier) Next(iteration int) interface{} {
	record := make(map[string]interface{}, len(s.names))
	for _, name := range s.names {
		record[name] = s.suppliers[name].Next(iteration)
	}
	return record
}

// nestedFactory builds one anonymous supplier per inner field. Inner fields
// were already canonicalized by the preprocessor; refs they rely on were
// hoisted to the top level and resolve through the loader.
func nestedFactory(fieldSpec *spec.FieldSpec, loader registry.Loader) (supplier.ValueSupplier, error) {
	fields, ok := fieldSpec.Fields.(map[string]interface{})
	if !ok {
		return nil, spec.Errorf(spec.CodeMalformedNested, "nested type requires a fields mapping")
	}

	inner, err := spec.FromCanonical(fields)
	if err != nil {
		return nil, err
	}

	names := inner.FieldNames()
	suppliers := make(map[string]supplier.ValueSupplier, len(names))
	for _, name := range names {
		fs, _ := inner.Field(name)
		built, err := loader.FromSpec(fs)
		if err != nil {
			return nil, err
		}
		suppliers[name] = built
	}

	nested := &nestedSupplier{names: names, suppliers: suppliers}

	config, err := loader.Config(fieldSpec)
	if err != nil {
		return nil, err
	}
	return wrapCount(nested, config)
}
