package supplier

import (
	"math/rand"
	"sort"

	"github.com/spf13/cast"

	"github.com/wehubfusion/Daedalus/pkg/spec"
)

// weightedValues draws among values with probability proportional to their
// configured weights
type weightedValues struct {
	values     []string
	cumulative []float64
	total      float64
}

// Next implements ValueSupplier
func (s *weightedValues) Next(_ int) interface{} {
	point := rand.Float64() * s.total
	idx := sort.SearchFloat64s(s.cumulative, point)
	if idx >= len(s.values) {
		idx = len(s.values) - 1
	}
	return s.values[idx]
}

// Weighted creates a weighted-choice supplier from a mapping of value to
// weight. Weights need not sum to one; they are normalized internally. A
// zero or negative weight fails construction.
func Weighted(weights map[string]interface{}) (ValueSupplier, error) {
	if len(weights) == 0 {
		return nil, spec.Errorf(spec.CodeEmptyData, "weighted supplier requires non-empty weights")
	}

	// deterministic ordering keeps construction reproducible
	values := make([]string, 0, len(weights))
	for value := range weights {
		values = append(values, value)
	}
	sort.Strings(values)

	cumulative := make([]float64, len(values))
	total := 0.0
	for i, value := range values {
		weight, err := cast.ToFloat64E(weights[value])
		if err != nil {
			return nil, spec.NewError(spec.CodeInvalidWeight, "weight for "+value+" is not numeric", err)
		}
		if weight <= 0 {
			return nil, spec.Errorf(spec.CodeInvalidWeight, "weight for %s must be positive, got %v", value, weight)
		}
		total += weight
		cumulative[i] = total
	}

	return &weightedValues{values: values, cumulative: cumulative, total: total}, nil
}

// weightedRefs dereferences a weighted key choice into the chosen key's
// supplier for the same iteration
type weightedRefs struct {
	keys      ValueSupplier
	suppliers map[string]ValueSupplier
}

// Next implements ValueSupplier
func (s *weightedRefs) Next(iteration int) interface{} {
	key := cast.ToString(s.keys.Next(iteration))
	return s.suppliers[key].Next(iteration)
}

// WeightedRefs creates a supplier that picks a key from the weighted key
// supplier and returns the chosen key's supplier value for the same
// iteration. Every weighted key must have a supplier.
func WeightedRefs(keys ValueSupplier, suppliers map[string]ValueSupplier) (ValueSupplier, error) {
	if len(suppliers) == 0 {
		return nil, spec.Errorf(spec.CodeEmptyData, "weighted refs supplier requires at least one supplier")
	}
	return &weightedRefs{keys: keys, suppliers: suppliers}, nil
}
