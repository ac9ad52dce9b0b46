// Package types registers the built-in field types. It mirrors the layout
// the registry package documents: factories live here, and NewRegistry
// returns a registry with every built-in registered, ready for a loader.
package types

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/wehubfusion/Daedalus/pkg/distribution"
	"github.com/wehubfusion/Daedalus/pkg/registry"
	"github.com/wehubfusion/Daedalus/pkg/supplier"
)

// Built-in type names
const (
	TypeValues           = "values"
	TypeRef              = "ref"
	TypeWeightedRef      = "weighted_ref"
	TypeCombine          = "combine"
	TypeCombineList      = "combine-list"
	TypeRange            = "range"
	TypeRandRange        = "rand_range"
	TypeRandIntRange     = "rand_int_range"
	TypeUUID             = "uuid"
	TypeDate             = "date"
	TypeDateISO          = "date.iso"
	TypeCharClass        = "char_class"
	TypeSelectListSubset = "select_list_subset"
	TypeCSV              = "csv"
	TypeNested           = "nested"
	TypeCalculate        = "calculate"
	TypeConfigRef        = "config_ref"
)

// NewRegistry creates a new registry with all built-in types registered
func NewRegistry() *registry.Registry {
	reg := registry.New()
	Register(reg)
	return reg
}

// Register registers every built-in type, schema and default into the given
// registry. Safe to call more than once; later registrations replace earlier
// ones.
func Register(reg *registry.Registry) {
	registerDefaults(reg)
	registerValues(reg)
	registerRefs(reg)
	registerCombine(reg)
	registerRanges(reg)
	registerUUID(reg)
	registerDate(reg)
	registerCharClass(reg)
	registerCSV(reg)
	registerNested(reg)
	registerCalculate(reg)
	registerSchemas(reg)
}

// isAffirmative interprets a config flag the permissive way specs write
// them: true, "true", "yes", "on" and 1 all count
func isAffirmative(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		switch strings.ToLower(v) {
		case "true", "yes", "on", "1":
			return true
		}
		return false
	default:
		return cast.ToBool(v)
	}
}

// configValue returns the config entry for key, falling back to the
// registry default registered under defaultKey
func configValue(config map[string]interface{}, loader registry.Loader, key, defaultKey string) interface{} {
	if value, ok := config[key]; ok {
		return value
	}
	return loader.Default(defaultKey)
}

// wrapCount applies the count or count_dist config to a supplier so each
// iteration yields a list. count_dist takes a distribution shorthand such
// as normal(mean=3, stddev=1); count takes a scalar, list or weighted map.
// Without either key the supplier passes through untouched.
func wrapCount(built supplier.ValueSupplier, config map[string]interface{}) (supplier.ValueSupplier, error) {
	if raw, ok := config["count_dist"]; ok {
		dist, err := distribution.FromString(cast.ToString(raw))
		if err != nil {
			return nil, err
		}
		return supplier.Multi(built, distribution.CountSupplier(dist)), nil
	}
	if _, ok := config["count"]; ok {
		count, err := supplier.CountFromConfig(config)
		if err != nil {
			return nil, err
		}
		return supplier.Multi(built, count), nil
	}
	return built, nil
}
