// Package engine wires the full generation stack together: the built-in
// type registry, the preprocessor pipeline and the record generator. Most
// callers only need this package; the sub-packages exist for embedders that
// swap pieces out.
package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/wehubfusion/Daedalus/pkg/generator"
	"github.com/wehubfusion/Daedalus/pkg/loader"
	"github.com/wehubfusion/Daedalus/pkg/preprocess"
	"github.com/wehubfusion/Daedalus/pkg/registry"
	"github.com/wehubfusion/Daedalus/pkg/spec"
	"github.com/wehubfusion/Daedalus/pkg/types"
)

// Options configures the assembled engine
type Options struct {
	// Logger receives diagnostics; nil means no logging
	Logger *zap.Logger

	// Registry overrides the built-in type registry
	Registry *registry.Registry

	// StrictValidation validates every field spec against its type's
	// schema before suppliers are built
	StrictValidation bool

	// Tracing enables span creation around record generation
	Tracing bool

	// GeneratorOptions are appended to the generator's options
	GeneratorOptions []generator.Option
}

func (o *Options) normalize() {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Registry == nil {
		o.Registry = types.NewRegistry()
	}
}

// ParseSpec preprocesses a raw specification into canonical form using the
// built-in registry and pipeline
func ParseSpec(raw spec.RawSpec) (*spec.Spec, error) {
	return ParseSpecWith(raw, Options{})
}

// ParseSpecWith preprocesses a raw specification with explicit options
func ParseSpecWith(raw spec.RawSpec, opts Options) (*spec.Spec, error) {
	opts.normalize()
	pipeline := preprocess.New(opts.Registry, preprocess.WithLogger(opts.Logger))
	return pipeline.ProcessToSpec(raw)
}

// NewGenerator preprocesses the raw specification and returns a generator
// ready to produce records
func NewGenerator(raw spec.RawSpec, opts Options) (*generator.Generator, error) {
	opts.normalize()
	canonical, err := ParseSpecWith(raw, opts)
	if err != nil {
		return nil, err
	}

	genOpts := []generator.Option{generator.WithLogger(opts.Logger)}
	if opts.Tracing {
		genOpts = append(genOpts, generator.WithTracing())
	}
	if opts.StrictValidation {
		genOpts = append(genOpts, generator.WithLoaderOptions(loader.WithStrictValidation()))
	}
	genOpts = append(genOpts, opts.GeneratorOptions...)
	return generator.New(canonical, opts.Registry, genOpts...), nil
}

// Entries is the one-call form: preprocess the raw spec and generate count
// records
func Entries(ctx context.Context, raw spec.RawSpec, count int, opts Options) ([]generator.Record, error) {
	gen, err := NewGenerator(raw, opts)
	if err != nil {
		return nil, err
	}
	return gen.Records(ctx, count)
}
