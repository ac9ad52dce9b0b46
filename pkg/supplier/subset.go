package supplier

import (
	"math/rand"
	"strings"

	"github.com/spf13/cast"

	"github.com/wehubfusion/Daedalus/pkg/spec"
)

// listCountSampler samples a subset of its backing list without replacement
// on every call
type listCountSampler struct {
	data     []interface{}
	count    ValueSupplier
	joinWith *string
}

// Next implements ValueSupplier
func (s *listCountSampler) Next(iteration int) interface{} {
	count := cast.ToInt(s.count.Next(iteration))
	if count > len(s.data) {
		count = len(s.data)
	}

	picked := rand.Perm(len(s.data))[:count]
	values := make([]interface{}, count)
	for i, idx := range picked {
		values[i] = s.data[idx]
	}

	if s.joinWith == nil {
		return values
	}
	parts := make([]string, count)
	for i, value := range values {
		parts[i] = cast.ToString(value)
	}
	return strings.Join(parts, *s.joinWith)
}

// ListCountSampler creates a supplier that samples count elements without
// replacement from data on each call. A nil joinWith returns the subset as a
// list; otherwise the subset is joined into a single string.
func ListCountSampler(data []interface{}, count ValueSupplier, joinWith *string) (ValueSupplier, error) {
	if len(data) == 0 {
		return nil, spec.Errorf(spec.CodeEmptyData, "list count sampler requires non-empty data")
	}
	return &listCountSampler{data: data, count: count, joinWith: joinWith}, nil
}

// StringSampler creates a list count sampler over the characters of the
// provided string
func StringSampler(data string, count ValueSupplier, joinWith *string) (ValueSupplier, error) {
	chars := make([]interface{}, 0, len(data))
	for _, r := range data {
		chars = append(chars, string(r))
	}
	return ListCountSampler(chars, count, joinWith)
}
