package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wehubfusion/Daedalus/pkg/schema"
	"github.com/wehubfusion/Daedalus/pkg/spec"
	"github.com/wehubfusion/Daedalus/pkg/supplier"
)

func staticFactory(value interface{}) TypeFactory {
	return func(_ *spec.FieldSpec, _ Loader) (supplier.ValueSupplier, error) {
		return supplier.Single(value), nil
	}
}

func TestRegistry_TypeLookup(t *testing.T) {
	reg := New()

	assert.False(t, reg.HasType("custom"))
	reg.RegisterType("custom", staticFactory("x"))
	assert.True(t, reg.HasType("custom"))

	factory, ok := reg.Type("custom")
	require.True(t, ok)
	s, err := factory(&spec.FieldSpec{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "x", s.Next(0))
}

func TestRegistry_LastRegistrationWins(t *testing.T) {
	reg := New()
	reg.RegisterType("custom", staticFactory("first"))
	reg.RegisterType("custom", staticFactory("second"))

	factory, ok := reg.Type("custom")
	require.True(t, ok)
	s, err := factory(&spec.FieldSpec{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "second", s.Next(0))
}

func TestRegistry_RegisteredTypesSorted(t *testing.T) {
	reg := New()
	reg.RegisterType("zeta", staticFactory(nil))
	reg.RegisterType("alpha", staticFactory(nil))

	assert.Equal(t, []string{"alpha", "zeta"}, reg.RegisteredTypes())
}

func TestRegistry_Reset(t *testing.T) {
	reg := New()
	reg.RegisterType("custom", staticFactory(nil))
	reg.RegisterDefault("answer", func() interface{} { return 42 })

	reg.Reset()

	assert.False(t, reg.HasType("custom"))
	assert.Nil(t, reg.Default("answer"))
}

func TestRegistry_Defaults(t *testing.T) {
	reg := New()

	assert.Nil(t, reg.Default("missing"))

	reg.RegisterDefault("join_with", func() interface{} { return "" })
	assert.Equal(t, "", reg.Default("join_with"))
}

func TestRegistry_Preprocessors(t *testing.T) {
	reg := New()

	_, ok := reg.Preprocessor("noop")
	assert.False(t, ok)

	reg.RegisterPreprocessor("noop", func(raw spec.RawSpec) (spec.RawSpec, error) {
		return raw, nil
	})
	pass, ok := reg.Preprocessor("noop")
	require.True(t, ok)

	in := spec.RawSpec{"a": 1}
	out, err := pass(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestRegistry_Schemas(t *testing.T) {
	reg := New()

	_, ok := reg.Schema("values")
	assert.False(t, ok)

	reg.RegisterSchema("values", func() *schema.Schema {
		return &schema.Schema{Type: "values"}
	})
	provider, ok := reg.Schema("values")
	require.True(t, ok)
	assert.Equal(t, "values", provider().Type)
}
