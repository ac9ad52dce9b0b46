package supplier

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/wehubfusion/Daedalus/pkg/spec"
)

// combineValues merges the per-iteration values of several suppliers into
// one joined string or one list
type combineValues struct {
	suppliers []ValueSupplier
	joinWith  string
	asList    bool
}

// Next implements ValueSupplier
func (s *combineValues) Next(iteration int) interface{} {
	values := make([]interface{}, len(s.suppliers))
	for i, sup := range s.suppliers {
		values[i] = sup.Next(iteration)
	}
	if s.asList {
		return values
	}
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = cast.ToString(value)
	}
	return strings.Join(parts, s.joinWith)
}

// Combine creates a supplier that evaluates every given supplier at the same
// iteration and joins the results with joinWith, or returns them as a list
// when asList is set
func Combine(suppliers []ValueSupplier, joinWith string, asList bool) (ValueSupplier, error) {
	if len(suppliers) < 2 {
		return nil, spec.Errorf(spec.CodeEmptyData, "combine supplier requires at least two suppliers, got %d", len(suppliers))
	}
	return &combineValues{suppliers: suppliers, joinWith: joinWith, asList: asList}, nil
}
