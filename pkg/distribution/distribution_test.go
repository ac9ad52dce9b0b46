package distribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniform_StaysInRange(t *testing.T) {
	dist := Uniform(10, 30)

	for i := 0; i < 1000; i++ {
		value := dist.NextValue()
		assert.GreaterOrEqual(t, value, 10.0)
		assert.Less(t, value, 30.0)
	}
}

func TestNormal_CentersOnMean(t *testing.T) {
	dist := Normal(50, 2)

	sum := 0.0
	const draws = 10000
	for i := 0; i < draws; i++ {
		sum += dist.NextValue()
	}
	assert.InDelta(t, 50.0, sum/draws, 0.5)
}

func TestBoundedNormal_Clamps(t *testing.T) {
	dist := BoundedNormal(5, 100, 1, 9)

	for i := 0; i < 1000; i++ {
		value := dist.NextValue()
		assert.GreaterOrEqual(t, value, 1.0)
		assert.LessOrEqual(t, value, 9.0)
	}
}

func TestSupplier_AdaptsDistribution(t *testing.T) {
	s := Supplier(Uniform(0, 1))

	value, ok := s.Next(0).(float64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, value, 0.0)
}

func TestCountSupplier_NeverNegative(t *testing.T) {
	s := CountSupplier(Normal(0, 5))

	for i := 0; i < 1000; i++ {
		count, ok := s.Next(i).(int)
		require.True(t, ok)
		assert.GreaterOrEqual(t, count, 0)
	}
}

func TestFromString_Uniform(t *testing.T) {
	dist, err := FromString("uniform(start=10, end=30)")
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		value := dist.NextValue()
		assert.GreaterOrEqual(t, value, 10.0)
		assert.Less(t, value, 30.0)
	}
}

func TestFromString_GaussAliases(t *testing.T) {
	for _, shorthand := range []string{
		"normal(mean=5, stddev=2)",
		"gauss(mean=5, stddev=2)",
		"gaussian(mean=5, stddev=2)",
	} {
		_, err := FromString(shorthand)
		assert.NoError(t, err, shorthand)
	}
}

func TestFromString_BoundedNormal(t *testing.T) {
	dist, err := FromString("normal(mean=5, stddev=100, min=1, max=9)")
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		value := dist.NextValue()
		assert.GreaterOrEqual(t, value, 1.0)
		assert.LessOrEqual(t, value, 9.0)
	}
}

func TestFromString_Malformed(t *testing.T) {
	_, err := FromString("not a distribution")
	assert.Error(t, err)

	_, err = FromString("triangular(a=1, b=2)")
	assert.Error(t, err)

	_, err = FromString("uniform(start=ten, end=30)")
	assert.Error(t, err)
}
