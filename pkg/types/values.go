package types

import (
	"github.com/wehubfusion/Daedalus/pkg/registry"
	"github.com/wehubfusion/Daedalus/pkg/spec"
	"github.com/wehubfusion/Daedalus/pkg/supplier"
)

// registerValues registers the values type, the workhorse behind literal
// and shorthand data
func registerValues(reg *registry.Registry) {
	reg.RegisterType(TypeValues, valuesFactory)
}

// valuesFactory builds the appropriate supplier for the shape of the data:
// constant for scalars, sequential or sampled for lists, weighted choice for
// mappings
func valuesFactory(fieldSpec *spec.FieldSpec, loader registry.Loader) (supplier.ValueSupplier, error) {
	config, err := loader.Config(fieldSpec)
	if err != nil {
		return nil, err
	}
	return ValuesSupplier(fieldSpec.Data, config, loader)
}

// ValuesSupplier builds a supplier for raw values data. Exposed so other
// factories can resolve config entries that are themselves value specs.
func ValuesSupplier(data interface{}, config map[string]interface{}, loader registry.Loader) (supplier.ValueSupplier, error) {
	sampling := isAffirmative(configValue(config, loader, "sample", defaultSampleMode))

	var built supplier.ValueSupplier
	var err error
	switch d := data.(type) {
	case []interface{}:
		if sampling {
			built, err = supplier.SampledList(d)
		} else {
			built, err = supplier.List(d)
		}
	case map[string]interface{}:
		if sampling {
			return nil, spec.Errorf(spec.CodeConflictingConfig, "cannot sample weighted values")
		}
		built, err = supplier.Weighted(d)
	default:
		built = supplier.Single(d)
	}
	if err != nil {
		return nil, err
	}

	return wrapCount(built, config)
}
