package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wehubfusion/Daedalus/pkg/spec"
	"github.com/wehubfusion/Daedalus/pkg/types"
)

func newGenerator(t *testing.T, raw spec.RawSpec, opts ...Option) *Generator {
	t.Helper()
	sp, err := spec.FromCanonical(raw)
	require.NoError(t, err)
	return New(sp, types.NewRegistry(), opts...)
}

func TestRecord_AllFieldsSameIteration(t *testing.T) {
	g := newGenerator(t, spec.RawSpec{
		"name": map[string]interface{}{"type": "values", "data": []interface{}{"bob", "ann"}},
		"age":  map[string]interface{}{"type": "values", "data": []interface{}{30, 40}},
	})

	first, err := g.Record(0)
	require.NoError(t, err)
	assert.Equal(t, Record{"name": "bob", "age": 30}, first)

	second, err := g.Record(1)
	require.NoError(t, err)
	assert.Equal(t, Record{"name": "ann", "age": 40}, second)
}

func TestRecord_BuildErrorSurfaces(t *testing.T) {
	g := newGenerator(t, spec.RawSpec{
		"bad": map[string]interface{}{"type": "no_such_type", "data": 1},
	})

	_, err := g.Record(0)
	require.Error(t, err)
	assert.True(t, spec.IsCode(err, spec.CodeUnknownType))
}

func TestRecord_RuntimePanicBecomesError(t *testing.T) {
	// the formula calls a method on a value that has none, which only
	// fails once real values flow through the evaluator
	g := newGenerator(t, spec.RawSpec{
		"x": map[string]interface{}{"type": "values", "data": 5},
		"boom": map[string]interface{}{
			"type":    "calculate",
			"refs":    []interface{}{"x"},
			"formula": "x.not.a.property",
		},
	})

	_, err := g.Record(0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generation failed")
}

func TestRecords_GeneratesCount(t *testing.T) {
	g := newGenerator(t, spec.RawSpec{
		"n": map[string]interface{}{"type": "values", "data": []interface{}{1, 2, 3}},
	})

	records, err := g.Records(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, 1, records[0]["n"])
	assert.Equal(t, 3, records[2]["n"])
	assert.Equal(t, 1, records[3]["n"])
}

func TestStream_HandlerSeesIterationOrder(t *testing.T) {
	g := newGenerator(t, spec.RawSpec{
		"n": map[string]interface{}{"type": "values", "data": []interface{}{10, 20}},
	})

	var iterations []int
	err := g.Stream(context.Background(), 3, func(i int, _ Record) error {
		iterations = append(iterations, i)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, iterations)
}

func TestStream_HandlerErrorHalts(t *testing.T) {
	g := newGenerator(t, spec.RawSpec{
		"n": map[string]interface{}{"type": "values", "data": 1},
	})

	sentinel := errors.New("stop")
	calls := 0
	err := g.Stream(context.Background(), 10, func(_ int, _ Record) error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}

func TestStream_CancelledContextHalts(t *testing.T) {
	g := newGenerator(t, spec.RawSpec{
		"n": map[string]interface{}{"type": "values", "data": 1},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := g.Stream(ctx, 10, func(_ int, _ Record) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoader_ExposedForDirectLookup(t *testing.T) {
	g := newGenerator(t, spec.RawSpec{
		"refs": map[string]interface{}{
			"POOL": map[string]interface{}{"type": "values", "data": 7},
		},
	})

	s, err := g.Loader().Get("POOL")
	require.NoError(t, err)
	assert.Equal(t, 7, s.Next(0))
}
