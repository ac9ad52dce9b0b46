package types

import (
	"math"
	"math/rand"

	"github.com/spf13/cast"

	"github.com/wehubfusion/Daedalus/pkg/registry"
	"github.com/wehubfusion/Daedalus/pkg/spec"
	"github.com/wehubfusion/Daedalus/pkg/supplier"
)

// registerRanges registers the range and random-range types
func registerRanges(reg *registry.Registry) {
	reg.RegisterType(TypeRange, rangeFactory)
	reg.RegisterType(TypeRandRange, randRangeFactory)
	reg.RegisterType(TypeRandIntRange, randIntRangeFactory)
}

// rangeFactory expands data of [start, end] or [start, end, step] into a
// sequential list supplier over the range, end inclusive
func rangeFactory(fieldSpec *spec.FieldSpec, loader registry.Loader) (supplier.ValueSupplier, error) {
	bounds, ok := fieldSpec.Data.([]interface{})
	if !ok || len(bounds) < 2 || len(bounds) > 3 {
		return nil, spec.Errorf(spec.CodeInvalidSpec, "range data must be [start, end] or [start, end, step]")
	}

	start, err := cast.ToFloat64E(bounds[0])
	if err != nil {
		return nil, spec.NewError(spec.CodeInvalidSpec, "range start is not numeric", err)
	}
	end, err := cast.ToFloat64E(bounds[1])
	if err != nil {
		return nil, spec.NewError(spec.CodeInvalidSpec, "range end is not numeric", err)
	}
	step := 1.0
	if len(bounds) == 3 {
		step, err = cast.ToFloat64E(bounds[2])
		if err != nil {
			return nil, spec.NewError(spec.CodeInvalidSpec, "range step is not numeric", err)
		}
	}
	if step == 0 || (end-start)*step < 0 {
		return nil, spec.Errorf(spec.CodeInvalidSpec, "range step %v never reaches %v from %v", step, end, start)
	}

	integral := isIntegral(start) && isIntegral(end) && isIntegral(step)
	var data []interface{}
	for v := start; (step > 0 && v <= end) || (step < 0 && v >= end); v += step {
		if integral {
			data = append(data, int(v))
		} else {
			data = append(data, v)
		}
	}
	return supplier.List(data)
}

func isIntegral(v float64) bool {
	return v == math.Trunc(v)
}

// randRangeFactory draws a uniform float between the configured bounds on
// every call. Bounds come from config min and max or from data [min, max].
func randRangeFactory(fieldSpec *spec.FieldSpec, loader registry.Loader) (supplier.ValueSupplier, error) {
	min, max, precision, err := randBounds(fieldSpec, loader)
	if err != nil {
		return nil, err
	}
	return supplier.Func(func(_ int) interface{} {
		value := min + rand.Float64()*(max-min)
		if precision >= 0 {
			scale := math.Pow10(precision)
			value = math.Round(value*scale) / scale
		}
		return value
	}), nil
}

// randIntRangeFactory draws a uniform integer in [min, max] on every call
func randIntRangeFactory(fieldSpec *spec.FieldSpec, loader registry.Loader) (supplier.ValueSupplier, error) {
	min, max, _, err := randBounds(fieldSpec, loader)
	if err != nil {
		return nil, err
	}
	lo, hi := int(min), int(max)
	return supplier.Func(func(_ int) interface{} {
		return lo + rand.Intn(hi-lo+1)
	}), nil
}

// randBounds resolves min, max and optional precision for the random range
// types. Returns precision -1 when unset.
func randBounds(fieldSpec *spec.FieldSpec, loader registry.Loader) (float64, float64, int, error) {
	config, err := loader.Config(fieldSpec)
	if err != nil {
		return 0, 0, 0, err
	}

	var minValue, maxValue interface{}
	if data, ok := fieldSpec.Data.([]interface{}); ok && len(data) >= 2 {
		minValue, maxValue = data[0], data[1]
	} else {
		minValue, maxValue = config["min"], config["max"]
	}
	if minValue == nil || maxValue == nil {
		return 0, 0, 0, spec.Errorf(spec.CodeInvalidSpec, "random range requires min and max bounds")
	}

	min, err := cast.ToFloat64E(minValue)
	if err != nil {
		return 0, 0, 0, spec.NewError(spec.CodeInvalidSpec, "range min is not numeric", err)
	}
	max, err := cast.ToFloat64E(maxValue)
	if err != nil {
		return 0, 0, 0, spec.NewError(spec.CodeInvalidSpec, "range max is not numeric", err)
	}
	if max < min {
		return 0, 0, 0, spec.Errorf(spec.CodeInvalidSpec, "range max %v is below min %v", max, min)
	}

	precision := -1
	if raw, ok := config["precision"]; ok {
		precision, err = cast.ToIntE(raw)
		if err != nil || precision < 0 {
			return 0, 0, 0, spec.Errorf(spec.CodeInvalidSpec, "precision must be a non-negative integer, got %v", raw)
		}
	}
	return min, max, precision, nil
}
