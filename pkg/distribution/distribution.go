// Package distribution provides the statistical sampling collaborators the
// supplier library composes: continuous distributions consumed through a
// next-value capability, plus parsing of distribution-shorthand config
// strings such as normal(mean=5, stddev=2).
package distribution

import (
	"math/rand"
	"regexp"
	"strings"

	"github.com/spf13/cast"

	"github.com/wehubfusion/Daedalus/pkg/spec"
	"github.com/wehubfusion/Daedalus/pkg/supplier"
)

// Distribution supplies the next value from an underlying statistical
// distribution
type Distribution interface {
	NextValue() float64
}

// uniform draws uniformly from [start, end)
type uniform struct {
	start float64
	end   float64
}

// NextValue implements Distribution
func (d *uniform) NextValue() float64 {
	return d.start + rand.Float64()*(d.end-d.start)
}

// Uniform creates a uniform distribution over [start, end)
func Uniform(start, end float64) Distribution {
	return &uniform{start: start, end: end}
}

// normal draws from a gaussian with the given mean and standard deviation
type normal struct {
	mean   float64
	stddev float64
	min    *float64
	max    *float64
}

// NextValue implements Distribution
func (d *normal) NextValue() float64 {
	value := rand.NormFloat64()*d.stddev + d.mean
	if d.min != nil && value < *d.min {
		value = *d.min
	}
	if d.max != nil && value > *d.max {
		value = *d.max
	}
	return value
}

// Normal creates a gaussian distribution with the given mean and standard
// deviation
func Normal(mean, stddev float64) Distribution {
	return &normal{mean: mean, stddev: stddev}
}

// BoundedNormal creates a gaussian distribution clamped to [min, max]
func BoundedNormal(mean, stddev, min, max float64) Distribution {
	return &normal{mean: mean, stddev: stddev, min: &min, max: &max}
}

// Supplier adapts a distribution to the ValueSupplier capability
func Supplier(dist Distribution) supplier.ValueSupplier {
	return supplier.Func(func(_ int) interface{} {
		return dist.NextValue()
	})
}

// CountSupplier adapts a distribution to an integer count supplier. Values
// are truncated and never fall below zero.
func CountSupplier(dist Distribution) supplier.ValueSupplier {
	return supplier.Func(func(_ int) interface{} {
		count := int(dist.NextValue())
		if count < 0 {
			count = 0
		}
		return count
	})
}

var distPattern = regexp.MustCompile(`^(\w+)\((.*)\)$`)

// FromString parses a distribution-shorthand string such as
// uniform(start=10, end=30) or normal(mean=5, stddev=2, min=1, max=9)
func FromString(shorthand string) (Distribution, error) {
	match := distPattern.FindStringSubmatch(strings.TrimSpace(shorthand))
	if match == nil {
		return nil, spec.Errorf(spec.CodeConflictingConfig, "invalid distribution: %s", shorthand)
	}

	name := match[1]
	args, err := parseArgs(match[2])
	if err != nil {
		return nil, err
	}

	switch name {
	case "uniform":
		return Uniform(args["start"], args["end"]), nil
	case "normal", "gauss", "gaussian":
		mean, stddev := args["mean"], args["stddev"]
		min, hasMin := args["min"]
		max, hasMax := args["max"]
		if hasMin && hasMax {
			return BoundedNormal(mean, stddev, min, max), nil
		}
		return Normal(mean, stddev), nil
	default:
		return nil, spec.Errorf(spec.CodeConflictingConfig, "unknown distribution: %s", name)
	}
}

func parseArgs(raw string) (map[string]float64, error) {
	args := make(map[string]float64)
	if strings.TrimSpace(raw) == "" {
		return args, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return nil, spec.Errorf(spec.CodeConflictingConfig, "invalid distribution argument: %s", pair)
		}
		value, err := cast.ToFloat64E(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, spec.NewError(spec.CodeConflictingConfig, "distribution argument "+pair+" is not numeric", err)
		}
		args[strings.TrimSpace(parts[0])] = value
	}
	return args, nil
}
