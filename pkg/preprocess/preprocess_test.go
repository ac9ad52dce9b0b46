package preprocess

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wehubfusion/Daedalus/pkg/spec"
	"github.com/wehubfusion/Daedalus/pkg/types"
)

func newPipeline(t *testing.T) *Pipeline {
	t.Helper()
	return New(types.NewRegistry())
}

func TestProcess_KeyShorthandWithParams(t *testing.T) {
	p := newPipeline(t)

	out, err := p.Process(spec.RawSpec{
		"age:rand_int_range?min=1&max=10": map[string]interface{}{},
	})
	require.NoError(t, err)

	want := spec.RawSpec{
		"age": map[string]interface{}{
			"type": "rand_int_range",
			"config": map[string]interface{}{
				"min": "1",
				"max": "10",
			},
		},
	}
	assert.Empty(t, cmp.Diff(want, out))
}

func TestProcess_KeyTypeWithoutParams(t *testing.T) {
	p := newPipeline(t)

	out, err := p.Process(spec.RawSpec{
		"id:uuid": map[string]interface{}{},
	})
	require.NoError(t, err)

	assert.Equal(t, spec.RawSpec{
		"id": map[string]interface{}{"type": "uuid"},
	}, out)
}

func TestProcess_RepeatedParamBecomesList(t *testing.T) {
	p := newPipeline(t)

	out, err := p.Process(spec.RawSpec{
		"pet:values?data=cat&data=dog": map[string]interface{}{},
	})
	require.NoError(t, err)

	field := out["pet"].(map[string]interface{})
	config := field["config"].(map[string]interface{})
	assert.Equal(t, []interface{}{"cat", "dog"}, config["data"])
}

func TestProcess_NameEncodedParamsWinOverInlineConfig(t *testing.T) {
	p := newPipeline(t)

	out, err := p.Process(spec.RawSpec{
		"n:rand_int_range?min=5": map[string]interface{}{
			"config": map[string]interface{}{"min": 1, "max": 9},
		},
	})
	require.NoError(t, err)

	config := out["n"].(map[string]interface{})["config"].(map[string]interface{})
	assert.Equal(t, "5", config["min"])
	assert.Equal(t, 9, config["max"])
}

func TestProcess_BareLiteralsWrappedAsValues(t *testing.T) {
	p := newPipeline(t)

	out, err := p.Process(spec.RawSpec{
		"name":  []interface{}{"bob", "ann"},
		"const": "fixed",
	})
	require.NoError(t, err)

	want := spec.RawSpec{
		"name": map[string]interface{}{
			"type": "values",
			"data": []interface{}{"bob", "ann"},
		},
		"const": map[string]interface{}{
			"type": "values",
			"data": "fixed",
		},
	}
	assert.Empty(t, cmp.Diff(want, out))
}

func TestProcess_MappingWithoutCoreKeysIsWeightedData(t *testing.T) {
	p := newPipeline(t)

	out, err := p.Process(spec.RawSpec{
		"status": map[string]interface{}{"active": 0.8, "inactive": 0.2},
	})
	require.NoError(t, err)

	field := out["status"].(map[string]interface{})
	assert.Equal(t, "values", field["type"])
	assert.Equal(t, map[string]interface{}{"active": 0.8, "inactive": 0.2}, field["data"])
}

func TestProcess_DuplicateCanonicalNameFails(t *testing.T) {
	p := newPipeline(t)

	_, err := p.Process(spec.RawSpec{
		"age":                      map[string]interface{}{"type": "values", "data": 1},
		"age:rand_int_range?min=1": map[string]interface{}{},
	})
	require.Error(t, err)
	assert.True(t, spec.IsCode(err, spec.CodeDuplicateField))
}

func TestProcess_Idempotent(t *testing.T) {
	p := newPipeline(t)

	raw := spec.RawSpec{
		"age:rand_int_range?min=1&max=10": map[string]interface{}{},
		"name":                            []interface{}{"bob", "ann"},
		"refs": map[string]interface{}{
			"pool:values": []interface{}{1, 2, 3},
		},
	}

	once, err := p.Process(raw)
	require.NoError(t, err)
	twice, err := p.Process(once)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(once, twice))
}

func TestProcess_DoesNotMutateInput(t *testing.T) {
	p := newPipeline(t)

	body := map[string]interface{}{}
	raw := spec.RawSpec{"age:rand_int_range?min=1": body}

	_, err := p.Process(raw)
	require.NoError(t, err)

	assert.Empty(t, body)
	_, stillThere := raw["age:rand_int_range?min=1"]
	assert.True(t, stillThere)
}

func TestProcess_RefsGetShorthandExpansion(t *testing.T) {
	p := newPipeline(t)

	out, err := p.Process(spec.RawSpec{
		"refs": map[string]interface{}{
			"ONE:values": []interface{}{1, 2},
		},
	})
	require.NoError(t, err)

	refs := out["refs"].(map[string]interface{})
	entry := refs["ONE"].(map[string]interface{})
	assert.Equal(t, "values", entry["type"])
	assert.Equal(t, []interface{}{1, 2}, entry["data"])
}

func TestProcess_CSVSelectExpansion(t *testing.T) {
	p := newPipeline(t)

	out, err := p.Process(spec.RawSpec{
		"placeholder": map[string]interface{}{
			"type": "csv_select",
			"data": map[string]interface{}{
				"one": 1,
				"two": 2,
			},
			"config": map[string]interface{}{"datafile": "example.csv"},
		},
	})
	require.NoError(t, err)

	_, placeholderKept := out["placeholder"]
	assert.False(t, placeholderKept)

	one := out["one"].(map[string]interface{})
	assert.Equal(t, "csv", one["type"])
	oneConfig := one["config"].(map[string]interface{})
	assert.Equal(t, 1, oneConfig["column"])
	assert.Equal(t, "placeholder_config_ref", oneConfig["config_ref"])

	refs := out["refs"].(map[string]interface{})
	configRef := refs["placeholder_config_ref"].(map[string]interface{})
	assert.Equal(t, "config_ref", configRef["type"])
	assert.Equal(t, map[string]interface{}{"datafile": "example.csv"},
		configRef["config"])
}

func TestProcess_CSVSelectCollisionSuffixed(t *testing.T) {
	p := newPipeline(t)

	out, err := p.Process(spec.RawSpec{
		"one": "already here",
		"sel": map[string]interface{}{
			"type": "csv_select",
			"data": map[string]interface{}{"one": 3},
		},
	})
	require.NoError(t, err)

	_, original := out["one"]
	assert.True(t, original)
	_, suffixed := out["one-3"]
	assert.True(t, suffixed)
}

func TestProcess_NestedFieldsReprocessed(t *testing.T) {
	p := newPipeline(t)

	out, err := p.Process(spec.RawSpec{
		"user": map[string]interface{}{
			"type": "nested",
			"fields": map[string]interface{}{
				"id:uuid": map[string]interface{}{},
				"name":    []interface{}{"bob"},
			},
		},
	})
	require.NoError(t, err)

	user := out["user"].(map[string]interface{})
	fields := user["fields"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"type": "uuid"}, fields["id"])
	assert.Equal(t, map[string]interface{}{
		"type": "values",
		"data": []interface{}{"bob"},
	}, fields["name"])
}

func TestProcess_NestedMissingFieldsFails(t *testing.T) {
	p := newPipeline(t)

	_, err := p.Process(spec.RawSpec{
		"user": map[string]interface{}{"type": "nested"},
	})
	require.Error(t, err)
	assert.True(t, spec.IsCode(err, spec.CodeMalformedNested))
}

func TestProcess_NestedRefsHoistedToTop(t *testing.T) {
	p := newPipeline(t)

	out, err := p.Process(spec.RawSpec{
		"user": map[string]interface{}{
			"type": "nested",
			"fields": map[string]interface{}{
				"name": map[string]interface{}{"type": "ref", "ref": "NAMES"},
				"refs": map[string]interface{}{
					"NAMES": []interface{}{"bob", "ann"},
				},
			},
		},
	})
	require.NoError(t, err)

	refs := out["refs"].(map[string]interface{})
	_, hoisted := refs["NAMES"]
	assert.True(t, hoisted)

	fields := out["user"].(map[string]interface{})["fields"].(map[string]interface{})
	_, leftBehind := fields["refs"]
	assert.False(t, leftBehind)
}

func TestProcess_CSVSelectInsideNested(t *testing.T) {
	p := newPipeline(t)

	out, err := p.Process(spec.RawSpec{
		"person": map[string]interface{}{
			"type": "nested",
			"fields": map[string]interface{}{
				"location": map[string]interface{}{
					"type":   "csv_select",
					"data":   map[string]interface{}{"city": 1, "country": 2},
					"config": map[string]interface{}{"datafile": "places.csv"},
				},
			},
		},
	})
	require.NoError(t, err)

	// the shared config lands in top-level refs
	refs := out["refs"].(map[string]interface{})
	configRef := refs["location_config_ref"].(map[string]interface{})
	assert.Equal(t, "config_ref", configRef["type"])

	// sibling csv fields stay at the nested depth
	fields := out["person"].(map[string]interface{})["fields"].(map[string]interface{})
	city := fields["city"].(map[string]interface{})
	assert.Equal(t, "csv", city["type"])
	assert.Equal(t, "location_config_ref",
		city["config"].(map[string]interface{})["config_ref"])
	_, countryThere := fields["country"]
	assert.True(t, countryThere)
	_, placeholderKept := fields["location"]
	assert.False(t, placeholderKept)
}

func TestProcess_UnknownPassNameFails(t *testing.T) {
	p := New(types.NewRegistry(), WithOrder([]string{"does-not-exist"}))

	_, err := p.Process(spec.RawSpec{})
	require.Error(t, err)
}

func TestProcess_CustomPassShadowsBuiltin(t *testing.T) {
	reg := types.NewRegistry()
	reg.RegisterPreprocessor(PassTypeCheck, func(raw spec.RawSpec) (spec.RawSpec, error) {
		raw["marker"] = map[string]interface{}{"type": "values", "data": true}
		return raw, nil
	})
	p := New(reg)

	out, err := p.Process(spec.RawSpec{})
	require.NoError(t, err)
	_, marked := out["marker"]
	assert.True(t, marked)
}

func TestProcessToSpec_ProducesTypedSpec(t *testing.T) {
	p := newPipeline(t)

	sp, err := p.ProcessToSpec(spec.RawSpec{
		"name": []interface{}{"bob"},
		"refs": map[string]interface{}{"POOL": []interface{}{1}},
	})
	require.NoError(t, err)

	fs, ok := sp.Field("name")
	require.True(t, ok)
	assert.Equal(t, "values", fs.Type)
	_, ok = sp.RefEntry("POOL")
	assert.True(t, ok)
}
