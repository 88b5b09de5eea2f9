package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneWayANOVA(t *testing.T) {
	// Hand-computed: group means 2 and 3, grand mean 2.5,
	// SSB = 3*0.25 + 3*0.25 = 1.5 (df 1), SSW = 2+2 = 4 (df 4), F = 1.5.
	groups := map[string][]float64{
		"A": {1, 2, 3},
		"B": {2, 3, 4},
	}

	res, err := OneWayANOVA("Sex", groups)
	require.NoError(t, err)

	assert.Equal(t, "Sex", res.Feature)
	assert.InDelta(t, 1.5, res.F, 1e-12)
	assert.Equal(t, 1, res.DFBetween)
	assert.Equal(t, 4, res.DFWithin)
	assert.GreaterOrEqual(t, res.P, 0.0)
	assert.LessOrEqual(t, res.P, 1.0)
	assert.InDelta(t, 2.0, res.GroupMeans["A"], 1e-12)
	assert.InDelta(t, 3.0, res.GroupMeans["B"], 1e-12)
	assert.Equal(t, 3, res.GroupSizes["A"])
	assert.Equal(t, []string{"A", "B"}, res.Levels())
}

func TestOneWayANOVAIdenticalGroups(t *testing.T) {
	groups := map[string][]float64{
		"A": {1, 2, 3},
		"B": {1, 2, 3},
	}

	res, err := OneWayANOVA("Equipment", groups)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.F)
	assert.InDelta(t, 1.0, res.P, 1e-9)
}

func TestOneWayANOVAZeroWithinVariance(t *testing.T) {
	groups := map[string][]float64{
		"A": {1, 1, 1},
		"B": {2, 2, 2},
	}

	res, err := OneWayANOVA("Equipment", groups)
	require.NoError(t, err)
	assert.True(t, math.IsInf(res.F, 1))
	assert.Equal(t, 0.0, res.P)
}

func TestOneWayANOVAErrors(t *testing.T) {
	tests := []struct {
		name   string
		groups map[string][]float64
	}{
		{
			name:   "single level",
			groups: map[string][]float64{"A": {1, 2, 3}},
		},
		{
			name:   "empty level",
			groups: map[string][]float64{"A": {1, 2}, "B": {}},
		},
		{
			name:   "too few observations",
			groups: map[string][]float64{"A": {1}, "B": {2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OneWayANOVA("Sex", tt.groups)
			assert.Error(t, err)
		})
	}
}

func TestOneWayANOVAPValueShrinksWithSeparation(t *testing.T) {
	near := map[string][]float64{
		"A": {10, 11, 12, 13},
		"B": {11, 12, 13, 14},
	}
	far := map[string][]float64{
		"A": {10, 11, 12, 13},
		"B": {30, 31, 32, 33},
	}

	resNear, err := OneWayANOVA("Sex", near)
	require.NoError(t, err)
	resFar, err := OneWayANOVA("Sex", far)
	require.NoError(t, err)

	assert.Greater(t, resFar.F, resNear.F)
	assert.Less(t, resFar.P, resNear.P)
}
