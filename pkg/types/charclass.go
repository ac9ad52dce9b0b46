package types

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/wehubfusion/Daedalus/pkg/distribution"
	"github.com/wehubfusion/Daedalus/pkg/registry"
	"github.com/wehubfusion/Daedalus/pkg/spec"
	"github.com/wehubfusion/Daedalus/pkg/supplier"
)

// Named character classes for the char_class type
var charClasses = map[string]string{
	"ascii":   "!\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~",
	"lower":   "abcdefghijklmnopqrstuvwxyz",
	"upper":   "ABCDEFGHIJKLMNOPQRSTUVWXYZ",
	"letters": "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ",
	"digits":  "0123456789",
	"hex":     "0123456789abcdef",
	"special": "!@#$%^&*()_+{}[];:<>,.?/\\|~`\"'",
	"word":    "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_",
	"printable": "!\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`" +
		"abcdefghijklmnopqrstuvwxyz{|}~ \t\n",
}

// registerCharClass registers char_class, its class aliases, and the
// select_list_subset type
func registerCharClass(reg *registry.Registry) {
	reg.RegisterType(TypeCharClass, charClassFactory)
	for name := range charClasses {
		alias := name
		reg.RegisterType("cc-"+alias, func(fieldSpec *spec.FieldSpec, loader registry.Loader) (supplier.ValueSupplier, error) {
			return charClassSupplier(charClasses[alias], fieldSpec, loader)
		})
	}
	reg.RegisterType(TypeSelectListSubset, selectListSubsetFactory)
}

// charClassFactory samples characters from a named class or a literal
// string of characters. Data may also be a list mixing class names and
// literal strings.
func charClassFactory(fieldSpec *spec.FieldSpec, loader registry.Loader) (supplier.ValueSupplier, error) {
	var pool strings.Builder
	switch data := fieldSpec.Data.(type) {
	case string:
		pool.WriteString(classOrLiteral(data))
	case []interface{}:
		for _, entry := range data {
			pool.WriteString(classOrLiteral(cast.ToString(entry)))
		}
	default:
		return nil, spec.Errorf(spec.CodeInvalidSpec, "char_class data must be a string or list of strings, got %T", fieldSpec.Data)
	}
	return charClassSupplier(pool.String(), fieldSpec, loader)
}

// classOrLiteral resolves a named class, falling back to the literal
// characters themselves
func classOrLiteral(data string) string {
	if class, ok := charClasses[data]; ok {
		return class
	}
	return data
}

// charClassSupplier wires the sampler with count configuration: a fixed or
// supplied count, or a uniform draw between min and max
func charClassSupplier(pool string, fieldSpec *spec.FieldSpec, loader registry.Loader) (supplier.ValueSupplier, error) {
	if pool == "" {
		return nil, spec.Errorf(spec.CodeEmptyData, "char_class requires a non-empty character pool")
	}
	config, err := loader.Config(fieldSpec)
	if err != nil {
		return nil, err
	}

	count, err := countFromRange(config, 1)
	if err != nil {
		return nil, err
	}
	joinWith := cast.ToString(configValue(config, loader, "join_with", defaultCharClassJoinWith))
	return supplier.StringSampler(pool, count, &joinWith)
}

// selectListSubsetFactory samples a subset of the data list without
// replacement, joined with a separator unless as_list is set. The subset
// size comes from count config or a gaussian over mean and stddev.
func selectListSubsetFactory(fieldSpec *spec.FieldSpec, loader registry.Loader) (supplier.ValueSupplier, error) {
	data, ok := fieldSpec.Data.([]interface{})
	if !ok {
		if fieldSpec.Ref == "" {
			return nil, spec.Errorf(spec.CodeInvalidSpec, "select_list_subset requires list data or a ref")
		}
		entry, found := loader.Spec().RefEntry(fieldSpec.Ref)
		if !found {
			return nil, spec.Errorf(spec.CodeMissingReference, "no ref named %s", fieldSpec.Ref)
		}
		data, ok = entry.Data.([]interface{})
		if !ok {
			return nil, spec.Errorf(spec.CodeInvalidSpec, "ref %s does not hold list data", fieldSpec.Ref)
		}
	}

	config, err := loader.Config(fieldSpec)
	if err != nil {
		return nil, err
	}

	var count supplier.ValueSupplier
	if rawMean, ok := config["mean"]; ok {
		mean := cast.ToFloat64(rawMean)
		stddev := cast.ToFloat64(config["stddev"])
		count = distribution.CountSupplier(distribution.BoundedNormal(mean, stddev, 1, float64(len(data))))
	} else {
		count, err = countFromRange(config, 1)
		if err != nil {
			return nil, err
		}
	}

	if isAffirmative(config["as_list"]) {
		return supplier.ListCountSampler(data, count, nil)
	}
	joinWith := cast.ToString(configValue(config, loader, "join_with", defaultSubsetJoinWith))
	return supplier.ListCountSampler(data, count, &joinWith)
}

// countFromRange builds a count supplier from count config, or a uniform
// integer draw when min and max are configured instead
func countFromRange(config map[string]interface{}, fallback int) (supplier.ValueSupplier, error) {
	if raw, ok := config["count"]; ok {
		return supplier.Count(raw)
	}
	rawMin, hasMin := config["min"]
	rawMax, hasMax := config["max"]
	if !hasMin && !hasMax {
		return supplier.Single(fallback), nil
	}
	min := fallback
	if hasMin {
		var err error
		if min, err = cast.ToIntE(rawMin); err != nil {
			return nil, spec.NewError(spec.CodeInvalidSpec, "count min must be an integer", err)
		}
	}
	max := min
	if hasMax {
		var err error
		if max, err = cast.ToIntE(rawMax); err != nil {
			return nil, spec.NewError(spec.CodeInvalidSpec, "count max must be an integer", err)
		}
	}
	if max < min {
		return nil, spec.Errorf(spec.CodeInvalidSpec, "count max %d is below min %d", max, min)
	}
	return distribution.CountSupplier(distribution.Uniform(float64(min), float64(max+1))), nil
}
