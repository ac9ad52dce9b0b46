package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wehubfusion/Daedalus/pkg/schema"
	"github.com/wehubfusion/Daedalus/pkg/spec"
	"github.com/wehubfusion/Daedalus/pkg/types"
)

func canonical(t *testing.T, raw spec.RawSpec) *spec.Spec {
	t.Helper()
	sp, err := spec.FromCanonical(raw)
	require.NoError(t, err)
	return sp
}

func TestGet_BuildsAndMemoizes(t *testing.T) {
	sp := canonical(t, spec.RawSpec{
		"name": map[string]interface{}{"type": "values", "data": []interface{}{"a", "b"}},
	})
	l := New(sp, types.NewRegistry())

	first, err := l.Get("name")
	require.NoError(t, err)
	second, err := l.Get("name")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, "a", first.Next(0))
	assert.Equal(t, "b", first.Next(1))
}

func TestGet_ResolvesRefsEntries(t *testing.T) {
	sp := canonical(t, spec.RawSpec{
		"refs": map[string]interface{}{
			"POOL": map[string]interface{}{"type": "values", "data": []interface{}{1, 2}},
		},
	})
	l := New(sp, types.NewRegistry())

	s, err := l.Get("POOL")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Next(0))
}

func TestGet_MissingNameFails(t *testing.T) {
	sp := canonical(t, spec.RawSpec{})
	l := New(sp, types.NewRegistry())

	_, err := l.Get("ghost")
	require.Error(t, err)
	assert.True(t, spec.IsCode(err, spec.CodeMissingReference))
}

func TestGet_UnknownTypeFails(t *testing.T) {
	sp := canonical(t, spec.RawSpec{
		"field": map[string]interface{}{"type": "not_a_type", "data": 1},
	})
	l := New(sp, types.NewRegistry())

	_, err := l.Get("field")
	require.Error(t, err)
	assert.True(t, spec.IsCode(err, spec.CodeUnknownType))
}

func TestGet_CircularReferenceDetected(t *testing.T) {
	sp := canonical(t, spec.RawSpec{
		"a": map[string]interface{}{
			"type":    "calculate",
			"refs":    []interface{}{"b"},
			"formula": "b + 1",
		},
		"b": map[string]interface{}{
			"type":    "calculate",
			"refs":    []interface{}{"a"},
			"formula": "a + 1",
		},
	})
	l := New(sp, types.NewRegistry())

	_, err := l.Get("a")
	require.Error(t, err)
	assert.True(t, spec.IsCode(err, spec.CodeCircularReference))
}

func TestFromSpec_FreshSupplierPerCall(t *testing.T) {
	sp := canonical(t, spec.RawSpec{})
	l := New(sp, types.NewRegistry())

	fieldSpec := &spec.FieldSpec{Type: "values", Data: []interface{}{"x", "y"}}
	first, err := l.FromSpec(fieldSpec)
	require.NoError(t, err)
	second, err := l.FromSpec(fieldSpec)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, first.Next(3), second.Next(3))
}

func TestBuild_LiteralDataWithoutType(t *testing.T) {
	sp := canonical(t, spec.RawSpec{})
	l := New(sp, types.NewRegistry())

	s, err := l.FromSpec(&spec.FieldSpec{Data: "constant"})
	require.NoError(t, err)
	assert.Equal(t, "constant", s.Next(0))
}

func TestBuild_NoTypeNoDataFails(t *testing.T) {
	sp := canonical(t, spec.RawSpec{})
	l := New(sp, types.NewRegistry())

	_, err := l.FromSpec(&spec.FieldSpec{Config: map[string]interface{}{"count": 2}})
	require.Error(t, err)
	assert.True(t, spec.IsCode(err, spec.CodeInvalidSpec))
}

func TestBuild_AppliesDecorationFromConfig(t *testing.T) {
	sp := canonical(t, spec.RawSpec{
		"id": map[string]interface{}{
			"type":   "values",
			"data":   42,
			"config": map[string]interface{}{"prefix": "#", "suffix": "!", "quote": "'"},
		},
	})
	l := New(sp, types.NewRegistry())

	s, err := l.Get("id")
	require.NoError(t, err)
	assert.Equal(t, "'#42!'", s.Next(0))
}

func TestBuild_AppliesCastFromConfig(t *testing.T) {
	sp := canonical(t, spec.RawSpec{
		"num": map[string]interface{}{
			"type":   "values",
			"data":   "42",
			"config": map[string]interface{}{"cast": "int"},
		},
	})
	l := New(sp, types.NewRegistry())

	s, err := l.Get("num")
	require.NoError(t, err)
	assert.Equal(t, 42, s.Next(0))
}

func TestConfig_MergesConfigRefUnderFieldConfig(t *testing.T) {
	sp := canonical(t, spec.RawSpec{
		"refs": map[string]interface{}{
			"shared": map[string]interface{}{
				"type":   "config_ref",
				"config": map[string]interface{}{"datafile": "base.csv", "headers": true},
			},
		},
	})
	l := New(sp, types.NewRegistry())

	config, err := l.Config(&spec.FieldSpec{
		Config: map[string]interface{}{
			"config_ref": "shared",
			"datafile":   "override.csv",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "override.csv", config["datafile"])
	assert.Equal(t, true, config["headers"])
}

func TestConfig_MissingConfigRefFails(t *testing.T) {
	sp := canonical(t, spec.RawSpec{})
	l := New(sp, types.NewRegistry())

	_, err := l.Config(&spec.FieldSpec{
		Config: map[string]interface{}{"config_ref": "ghost"},
	})
	require.Error(t, err)
	assert.True(t, spec.IsCode(err, spec.CodeMissingReference))
}

func TestConfig_WrongRefTypeFails(t *testing.T) {
	sp := canonical(t, spec.RawSpec{
		"refs": map[string]interface{}{
			"shared": map[string]interface{}{"type": "values", "data": 1},
		},
	})
	l := New(sp, types.NewRegistry())

	_, err := l.Config(&spec.FieldSpec{
		Config: map[string]interface{}{"config_ref": "shared"},
	})
	require.Error(t, err)
	assert.True(t, spec.IsCode(err, spec.CodeConflictingConfig))
}

func TestStrictValidation_RejectsBadSpec(t *testing.T) {
	reg := types.NewRegistry()
	reg.RegisterSchema("values", func() *schema.Schema {
		return &schema.Schema{Type: "values", Required: []string{"data"}}
	})

	sp := canonical(t, spec.RawSpec{
		"bad": map[string]interface{}{"type": "values", "config": map[string]interface{}{"count": 1}},
	})
	l := New(sp, reg, WithStrictValidation())

	_, err := l.Get("bad")
	require.Error(t, err)
}

func TestStrictValidation_PassesGoodSpec(t *testing.T) {
	sp := canonical(t, spec.RawSpec{
		"good": map[string]interface{}{"type": "values", "data": []interface{}{1, 2}},
	})
	l := New(sp, types.NewRegistry(), WithStrictValidation())

	s, err := l.Get("good")
	require.NoError(t, err)
	assert.NotNil(t, s)
}
