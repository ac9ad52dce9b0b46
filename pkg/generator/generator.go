// Package generator drives record assembly: it fixes one iteration index
// per record and asks the loader for every field's value at that index.
package generator

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/wehubfusion/Daedalus/pkg/loader"
	"github.com/wehubfusion/Daedalus/pkg/registry"
	"github.com/wehubfusion/Daedalus/pkg/spec"
)

// Record is one generated output record
type Record = map[string]interface{}

// Generator assembles records from a canonical spec. Build one Generator
// (and therefore one Loader) per worker; suppliers hold mutable cursors and
// must not be shared.
type Generator struct {
	spec    *spec.Spec
	loader  *loader.Loader
	logger  *zap.Logger
	tracer  trace.Tracer
	tracing bool

	loaderOpts []loader.Option
}

// Option configures a Generator
type Option func(*Generator)

// WithLogger sets the logger used for diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithTracing enables span creation around record generation. Tracing setup
// (exporter, provider) is the embedding application's concern; see
// internal/tracing for the CLI's wiring.
func WithTracing() Option {
	return func(g *Generator) {
		g.tracing = true
	}
}

// WithLoaderOptions passes options through to the underlying Loader
func WithLoaderOptions(opts ...loader.Option) Option {
	return func(g *Generator) {
		g.loaderOpts = append(g.loaderOpts, opts...)
	}
}

// New creates a Generator over the given canonical spec and registry
func New(sp *spec.Spec, reg *registry.Registry, opts ...Option) *Generator {
	g := &Generator{
		spec:   sp,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	loaderOpts := append([]loader.Option{loader.WithLogger(g.logger)}, g.loaderOpts...)
	g.loader = loader.New(sp, reg, loaderOpts...)
	if g.tracing {
		g.tracer = otel.Tracer("daedalus/generator")
	}
	return g
}

// Loader exposes the generator's loader for direct field lookup
func (g *Generator) Loader() *loader.Loader {
	return g.loader
}

// Record builds the record for one iteration index. Every field is driven
// with the same index so composite suppliers see consistent dependencies.
func (g *Generator) Record(iteration int) (record Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("record %d generation failed: %v", iteration, r)
		}
	}()

	names := g.spec.FieldNames()
	record = make(Record, len(names))
	for _, name := range names {
		sup, err := g.loader.Get(name)
		if err != nil {
			return nil, err
		}
		record[name] = sup.Next(iteration)
	}
	return record, nil
}

// Records generates count records starting at iteration zero
func (g *Generator) Records(ctx context.Context, count int) ([]Record, error) {
	records := make([]Record, 0, count)
	err := g.Stream(ctx, count, func(_ int, record Record) error {
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Stream generates count records and hands each to the handler as it is
// built. Generation halts on the first error; partial output already
// handed off is not rolled back.
func (g *Generator) Stream(ctx context.Context, count int, handler func(iteration int, record Record) error) error {
	if g.tracer != nil {
		var span trace.Span
		ctx, span = g.tracer.Start(ctx, "generate",
			trace.WithAttributes(
				attribute.Int("record_count", count),
				attribute.Int("field_count", len(g.spec.Fields)),
			))
		defer span.End()
	}

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		record, err := g.Record(i)
		if err != nil {
			g.logger.Error("generation halted", zap.Int("iteration", i), zap.Error(err))
			return err
		}
		if err := handler(i, record); err != nil {
			return err
		}
	}
	return nil
}
