package supplier

import (
	"github.com/spf13/cast"

	"github.com/wehubfusion/Daedalus/pkg/spec"
)

// Count builds a count supplier from a raw config value. A scalar yields a
// constant count, a list cycles through counts, and a mapping is treated as
// weighted counts.
func Count(value interface{}) (ValueSupplier, error) {
	switch v := value.(type) {
	case nil:
		return Single(1), nil
	case []interface{}:
		return List(v)
	case map[string]interface{}:
		return Weighted(v)
	default:
		count, err := cast.ToIntE(v)
		if err != nil {
			return nil, spec.NewError(spec.CodeConflictingConfig, "count must be numeric, a list, or weighted counts", err)
		}
		return Single(count), nil
	}
}

// CountFromConfig builds a count supplier from the count config key,
// defaulting to a constant one when absent
func CountFromConfig(config map[string]interface{}) (ValueSupplier, error) {
	return Count(config["count"])
}
