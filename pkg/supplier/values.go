package supplier

import (
	"math/rand"

	"github.com/spf13/cast"

	"github.com/wehubfusion/Daedalus/pkg/spec"
)

// singleValue always returns the same value regardless of iteration
type singleValue struct {
	data interface{}
}

// Next implements ValueSupplier
func (s *singleValue) Next(_ int) interface{} {
	return s.data
}

// Single creates a supplier that returns the same value on every iteration
func Single(data interface{}) ValueSupplier {
	return &singleValue{data: data}
}

// listValues cycles through its data deterministically
type listValues struct {
	data []interface{}
}

// Next implements ValueSupplier
func (s *listValues) Next(iteration int) interface{} {
	return s.data[iteration%len(s.data)]
}

// List creates a sequential list supplier: Next(i) is data[i mod len(data)]
func List(data []interface{}) (ValueSupplier, error) {
	if len(data) == 0 {
		return nil, spec.Errorf(spec.CodeEmptyData, "list supplier requires non-empty data")
	}
	return &listValues{data: data}, nil
}

// sampledListValues draws uniformly at random from its data on every call,
// independent of iteration
type sampledListValues struct {
	data []interface{}
}

// Next implements ValueSupplier
func (s *sampledListValues) Next(_ int) interface{} {
	return s.data[rand.Intn(len(s.data))]
}

// SampledList creates a sampling list supplier. Used only when a field opts
// in via the sample flag.
func SampledList(data []interface{}) (ValueSupplier, error) {
	if len(data) == 0 {
		return nil, spec.Errorf(spec.CodeEmptyData, "sampled list supplier requires non-empty data")
	}
	return &sampledListValues{data: data}, nil
}

// multiValue wraps a supplier and returns a list of values per iteration.
// The wrapped supplier is consulted at consecutive iterations so sequential
// suppliers yield non-repeating draws.
type multiValue struct {
	wrapped ValueSupplier
	count   ValueSupplier
}

// Next implements ValueSupplier
func (s *multiValue) Next(iteration int) interface{} {
	count := cast.ToInt(s.count.Next(iteration))
	values := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		values = append(values, s.wrapped.Next(iteration+i))
	}
	return values
}

// Multi wraps a supplier so each iteration yields a list of values. The
// count itself comes from a supplier, so it may be constant, cycled or drawn
// from a distribution.
func Multi(wrapped ValueSupplier, count ValueSupplier) ValueSupplier {
	return &multiValue{wrapped: wrapped, count: count}
}

// MultiN wraps a supplier with a fixed per-iteration count
func MultiN(wrapped ValueSupplier, count int) ValueSupplier {
	return Multi(wrapped, Single(count))
}

// rotatingList rotates through suppliers incrementally
type rotatingList struct {
	suppliers []ValueSupplier
}

// Next implements ValueSupplier
func (s *rotatingList) Next(iteration int) interface{} {
	idx := iteration % len(s.suppliers)
	return s.suppliers[idx].Next(iteration)
}

// Rotate creates a supplier that rotates through the provided suppliers,
// consulting suppliers[i mod len] at iteration i
func Rotate(suppliers []ValueSupplier) (ValueSupplier, error) {
	if len(suppliers) == 0 {
		return nil, spec.Errorf(spec.CodeEmptyData, "rotating supplier requires at least one supplier")
	}
	return &rotatingList{suppliers: suppliers}, nil
}
