// Package preprocess implements the rewrite pipeline that turns a raw,
// possibly-shorthand specification into canonical form. Each pass has the
// same signature and is registered by name, so the chain can be reordered or
// extended and re-entered for nested structures.
package preprocess

import (
	"go.uber.org/zap"

	"github.com/wehubfusion/Daedalus/pkg/registry"
	"github.com/wehubfusion/Daedalus/pkg/spec"
)

// Built-in pass names
const (
	PassParams    = "params"
	PassCSVSelect = "csv-select"
	PassNested    = "nested"
	PassTypeCheck = "type-check"
)

// DefaultOrder is the order passes run in unless overridden
func DefaultOrder() []string {
	return []string{PassParams, PassCSVSelect, PassNested, PassTypeCheck}
}

// Pipeline runs an ordered chain of named preprocessor passes pulled from a
// registry
type Pipeline struct {
	registry *registry.Registry
	logger   *zap.Logger
	order    []string
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithLogger sets the logger used for diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithOrder overrides the pass order
func WithOrder(order []string) Option {
	return func(p *Pipeline) {
		p.order = order
	}
}

// New creates a pipeline over the given registry, registering the built-in
// passes if they are not already present
func New(reg *registry.Registry, opts ...Option) *Pipeline {
	p := &Pipeline{
		registry: reg,
		logger:   zap.NewNop(),
		order:    DefaultOrder(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.registerBuiltins()
	return p
}

// registerBuiltins registers the built-in passes under their default names.
// Existing registrations are preserved so user-supplied passes can shadow
// the built-ins.
func (p *Pipeline) registerBuiltins() {
	builtins := map[string]registry.Preprocessor{
		PassParams:    p.extractParams,
		PassCSVSelect: p.expandCSVSelect,
		PassNested:    p.normalizeNested,
		PassTypeCheck: p.checkTypes,
	}
	for name, pass := range builtins {
		if _, ok := p.registry.Preprocessor(name); !ok {
			p.registry.RegisterPreprocessor(name, pass)
		}
	}
}

// Process runs every pass in order and returns the canonical raw spec
func (p *Pipeline) Process(raw spec.RawSpec) (spec.RawSpec, error) {
	current := raw
	for _, name := range p.order {
		pass, ok := p.registry.Preprocessor(name)
		if !ok {
			return nil, spec.Errorf(spec.CodeInvalidSpec, "no preprocessor registered under %s", name)
		}
		next, err := pass(current)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// ProcessToSpec runs the pipeline and converts the result into a typed Spec
func (p *Pipeline) ProcessToSpec(raw spec.RawSpec) (*spec.Spec, error) {
	canonical, err := p.Process(raw)
	if err != nil {
		return nil, err
	}
	return spec.FromCanonical(canonical)
}
