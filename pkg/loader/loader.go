// Package loader resolves field names from a canonical spec into fully
// built value-supplier trees. A Loader memoizes one supplier per field name,
// detects circular references during construction, and exposes lookup by
// name for cross-field references.
package loader

import (
	"go.uber.org/zap"

	"github.com/wehubfusion/Daedalus/pkg/registry"
	"github.com/wehubfusion/Daedalus/pkg/schema"
	"github.com/wehubfusion/Daedalus/pkg/spec"
	"github.com/wehubfusion/Daedalus/pkg/supplier"
)

// Loader owns the memoized suppliers built for one generation session. It
// is not safe for concurrent use; build one Loader per worker.
type Loader struct {
	spec      *spec.Spec
	registry  *registry.Registry
	logger    *zap.Logger
	validator *schema.Validator
	strict    bool

	cache    map[string]supplier.ValueSupplier
	building map[string]struct{}
}

// Option configures a Loader
type Option func(*Loader)

// WithLogger sets the logger used for diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithStrictValidation enables per-type schema validation of every field
// spec before its supplier is built
func WithStrictValidation() Option {
	return func(l *Loader) {
		l.strict = true
	}
}

// New creates a Loader for the given canonical spec and registry
func New(sp *spec.Spec, reg *registry.Registry, opts ...Option) *Loader {
	l := &Loader{
		spec:      sp,
		registry:  reg,
		logger:    zap.NewNop(),
		validator: schema.NewValidator(),
		cache:     make(map[string]supplier.ValueSupplier),
		building:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Spec implements registry.Loader
func (l *Loader) Spec() *spec.Spec {
	return l.spec
}

// Get returns the supplier for a field or refs entry, building and
// memoizing it on first use. A field that transitively references itself
// fails rather than recursing.
func (l *Loader) Get(name string) (supplier.ValueSupplier, error) {
	if cached, ok := l.cache[name]; ok {
		return cached, nil
	}
	if _, inProgress := l.building[name]; inProgress {
		return nil, spec.Errorf(spec.CodeCircularReference, "field %s references itself transitively", name)
	}

	fieldSpec, ok := l.spec.FieldOrRef(name)
	if !ok {
		return nil, spec.Errorf(spec.CodeMissingReference, "no field or ref named %s", name)
	}

	l.building[name] = struct{}{}
	defer delete(l.building, name)

	built, err := l.build(name, fieldSpec)
	if err != nil {
		return nil, err
	}
	l.cache[name] = built
	return built, nil
}

// FromSpec builds an anonymous, unregistered supplier directly from an
// inline spec fragment. Used when a configuration value is itself a
// generation spec. Each call builds a fresh supplier with its own state.
func (l *Loader) FromSpec(fieldSpec *spec.FieldSpec) (supplier.ValueSupplier, error) {
	return l.build("", fieldSpec)
}

// build dispatches on the field's type through the registry and applies the
// decoration and cast wrappers the resolved config asks for
func (l *Loader) build(name string, fieldSpec *spec.FieldSpec) (supplier.ValueSupplier, error) {
	typeName := fieldSpec.Type
	if typeName == "" {
		if fieldSpec.Data == nil {
			return nil, spec.Errorf(spec.CodeInvalidSpec, "field %s has neither type nor data", name)
		}
		// literal-data shorthand
		typeName = spec.TypeValues
	}

	if l.strict {
		if err := l.validate(typeName, fieldSpec); err != nil {
			return nil, err
		}
	}

	factory, ok := l.registry.Type(typeName)
	if !ok {
		return nil, spec.Errorf(spec.CodeUnknownType, "unable to load field %s: no type registered for %s", name, typeName)
	}

	built, err := factory(fieldSpec, l)
	if err != nil {
		return nil, err
	}

	config, err := l.Config(fieldSpec)
	if err != nil {
		return nil, err
	}
	if supplier.IsDecorated(config) {
		built = supplier.DecoratedFromConfig(built, config)
	}
	return supplier.CastFromConfig(built, config)
}

// validate checks the field spec against its type's registered schema, when
// one exists
func (l *Loader) validate(typeName string, fieldSpec *spec.FieldSpec) error {
	provider, ok := l.registry.Schema(typeName)
	if !ok {
		l.logger.Debug("no schema registered for type", zap.String("type", typeName))
		return nil
	}
	return l.validator.Validate(typeName, fieldSpec.ToMap(), provider())
}
