// Package registry provides the string-keyed registry that maps field type
// names to the factories, schemas, defaults and preprocessor passes that
// serve them. The registry is an explicit, injectable object: construct one
// per process or per test, thread it through loader construction, and reset
// it freely for test isolation.
//
// Note: built-in types must be registered from their own package to avoid
// import cycles. See pkg/types for a pre-configured registry.
package registry

import (
	"sort"
	"sync"

	"github.com/wehubfusion/Daedalus/pkg/schema"
	"github.com/wehubfusion/Daedalus/pkg/spec"
	"github.com/wehubfusion/Daedalus/pkg/supplier"
)

// Loader resolves field and ref names to built suppliers. It is implemented
// by pkg/loader and consumed by type factories, which may pull in other
// fields' suppliers, build anonymous suppliers from inline sub-specs, or
// resolve a field's effective configuration.
type Loader interface {
	// Get returns the memoized supplier for a field or refs entry
	Get(name string) (supplier.ValueSupplier, error)

	// FromSpec builds an anonymous supplier directly from an inline spec
	// fragment
	FromSpec(fieldSpec *spec.FieldSpec) (supplier.ValueSupplier, error)

	// Config resolves the field's effective configuration, merging any
	// config_ref base layer under the field's own config
	Config(fieldSpec *spec.FieldSpec) (map[string]interface{}, error)

	// Default returns the registry default for a configuration key, or
	// nil when none is registered
	Default(name string) interface{}

	// Spec returns the canonical spec the loader was built for
	Spec() *spec.Spec
}

// TypeFactory builds a value supplier for one field of its registered type
type TypeFactory func(fieldSpec *spec.FieldSpec, loader Loader) (supplier.ValueSupplier, error)

// SchemaProvider returns the validation schema for a registered type
type SchemaProvider func() *schema.Schema

// DefaultProvider returns the default value for a configuration key
type DefaultProvider func() interface{}

// Preprocessor is one named rewrite pass over a raw specification
type Preprocessor func(raw spec.RawSpec) (spec.RawSpec, error)

// Registry maps type names to the handlers that serve them, across four
// independent namespaces. Last registration for a name wins, which lets
// user-supplied types shadow built-ins. Lookups never fail; absence is a
// normal checked outcome.
type Registry struct {
	mu            sync.RWMutex
	types         map[string]TypeFactory
	schemas       map[string]SchemaProvider
	defaults      map[string]DefaultProvider
	preprocessors map[string]Preprocessor
}

// New creates an empty registry
func New() *Registry {
	r := &Registry{}
	r.Reset()
	return r
}

// Reset clears every namespace. Safe to call between tests.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = make(map[string]TypeFactory)
	r.schemas = make(map[string]SchemaProvider)
	r.defaults = make(map[string]DefaultProvider)
	r.preprocessors = make(map[string]Preprocessor)
}

// RegisterType registers a factory for a type name
func (r *Registry) RegisterType(name string, factory TypeFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[name] = factory
}

// Type looks up the factory for a type name
func (r *Registry) Type(name string) (TypeFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.types[name]
	return factory, ok
}

// HasType checks whether a factory is registered for a type name
func (r *Registry) HasType(name string) bool {
	_, ok := r.Type(name)
	return ok
}

// RegisteredTypes returns all registered type names in sorted order
func (r *Registry) RegisteredTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterSchema registers a schema provider for a type name
func (r *Registry) RegisterSchema(name string, provider SchemaProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[name] = provider
}

// Schema looks up the schema provider for a type name
func (r *Registry) Schema(name string) (SchemaProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.schemas[name]
	return provider, ok
}

// RegisterDefault registers a default provider for a configuration key
func (r *Registry) RegisterDefault(name string, provider DefaultProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaults[name] = provider
}

// Default returns the default value for a configuration key, or nil when no
// default is registered
func (r *Registry) Default(name string) interface{} {
	r.mu.RLock()
	provider, ok := r.defaults[name]
	r.mu.RUnlock()
	if !ok {
		return nil
	}
	return provider()
}

// RegisterPreprocessor registers a named preprocessor pass
func (r *Registry) RegisterPreprocessor(name string, pass Preprocessor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.preprocessors[name] = pass
}

// Preprocessor looks up a named preprocessor pass
func (r *Registry) Preprocessor(name string) (Preprocessor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pass, ok := r.preprocessors[name]
	return pass, ok
}
