package types

import (
	"time"

	"github.com/spf13/cast"

	"github.com/wehubfusion/Daedalus/pkg/distribution"
	"github.com/wehubfusion/Daedalus/pkg/registry"
	"github.com/wehubfusion/Daedalus/pkg/spec"
	"github.com/wehubfusion/Daedalus/pkg/supplier"
)

// registerDate registers the date types
func registerDate(reg *registry.Registry) {
	reg.RegisterType(TypeDate, dateFactory)
	reg.RegisterType(TypeDateISO, dateISOFactory)
}

// dateFactory supplies dates drawn from a window around now. The window is
// configured by start (formatted date), offset (days back from now) and
// duration_days; center_date plus stddev_days selects a gaussian draw
// instead of a uniform one.
func dateFactory(fieldSpec *spec.FieldSpec, loader registry.Loader) (supplier.ValueSupplier, error) {
	config, err := loader.Config(fieldSpec)
	if err != nil {
		return nil, err
	}
	format := cast.ToString(configValue(config, loader, "format", defaultDateFormat))
	return dateSupplier(config, loader, format)
}

// dateISOFactory supplies the same dates in ISO-8601 form
func dateISOFactory(fieldSpec *spec.FieldSpec, loader registry.Loader) (supplier.ValueSupplier, error) {
	config, err := loader.Config(fieldSpec)
	if err != nil {
		return nil, err
	}
	return dateSupplier(config, loader, "2006-01-02T15:04:05")
}

func dateSupplier(config map[string]interface{}, loader registry.Loader, format string) (supplier.ValueSupplier, error) {
	durationDays, err := cast.ToIntE(configValue(config, loader, "duration_days", defaultDateDurationDays))
	if err != nil {
		return nil, spec.NewError(spec.CodeInvalidSpec, "duration_days must be an integer", err)
	}
	offsetDays := cast.ToInt(config["offset"])

	// gaussian window centered on a date
	if rawCenter, ok := config["center_date"]; ok {
		center, err := time.Parse(format, cast.ToString(rawCenter))
		if err != nil {
			return nil, spec.NewError(spec.CodeInvalidSpec, "center_date does not match format "+format, err)
		}
		stddevDays := cast.ToFloat64(configValue(config, loader, "stddev_days", defaultDateStddevDays))
		dist := distribution.Normal(0, stddevDays*24*float64(time.Hour))
		return supplier.Func(func(_ int) interface{} {
			return center.Add(time.Duration(dist.NextValue())).Format(format)
		}), nil
	}

	start := time.Now().AddDate(0, 0, -offsetDays)
	if rawStart, ok := config["start"]; ok {
		parsed, err := time.Parse(format, cast.ToString(rawStart))
		if err != nil {
			return nil, spec.NewError(spec.CodeInvalidSpec, "start does not match format "+format, err)
		}
		start = parsed.AddDate(0, 0, -offsetDays)
	}

	window := float64(durationDays) * 24 * float64(time.Hour)
	dist := distribution.Uniform(0, window)
	return supplier.Func(func(_ int) interface{} {
		return start.Add(time.Duration(dist.NextValue())).Format(format)
	}), nil
}
