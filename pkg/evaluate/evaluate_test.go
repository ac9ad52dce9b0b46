package evaluate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFormula_RewritesTemplateRefs(t *testing.T) {
	assert.Equal(t, "a + b", NormalizeFormula("{{a}} + {{b}}"))
	assert.Equal(t, "price * qty", NormalizeFormula("{{ price }} * {{qty}}"))
	assert.Equal(t, "a + b", NormalizeFormula("a + b"))
}

func TestIsReservedWord(t *testing.T) {
	assert.True(t, IsReservedWord("return"))
	assert.True(t, IsReservedWord("Math"))
	assert.False(t, IsReservedWord("price"))
}

func TestEvaluate_Arithmetic(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Evaluate("a * b", map[string]interface{}{"a": 3, "b": 4})
	require.NoError(t, err)
	assert.EqualValues(t, 12, result)
}

func TestEvaluate_TemplateStyleFormula(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Evaluate("{{price}} * {{qty}}", map[string]interface{}{
		"price": 2.5,
		"qty":   4,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 10.0, result)
}

func TestEvaluate_MathBuiltins(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Evaluate("Math.floor(x / 2)", map[string]interface{}{"x": 7})
	require.NoError(t, err)
	assert.EqualValues(t, 3, result)
}

func TestEvaluate_StringConcatenation(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Evaluate("first + ' ' + last", map[string]interface{}{
		"first": "bob",
		"last":  "smith",
	})
	require.NoError(t, err)
	assert.Equal(t, "bob smith", result)
}

func TestEvaluate_SyntaxErrorFails(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Evaluate("a +* b", map[string]interface{}{"a": 1, "b": 2})
	require.Error(t, err)
}

func TestEvaluate_RebindsAcrossCalls(t *testing.T) {
	engine := NewEngine()

	first, err := engine.Evaluate("x + 1", map[string]interface{}{"x": 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, first)

	second, err := engine.Evaluate("x + 1", map[string]interface{}{"x": 10})
	require.NoError(t, err)
	assert.EqualValues(t, 11, second)
}
