package forest

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture: target driven by feature 0, feature 1 is pure noise.
func forestFixture(n int, seed int64) ([][]float64, []float64) {
	rng := rand.New(rand.NewSource(seed))
	x := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = []float64{rng.Float64() * 10, rng.Float64() * 10}
		y[i] = 10 * x[i][0]
	}
	return x, y
}

func TestForestFit(t *testing.T) {
	x, y := forestFixture(120, 1)

	f, err := Fit(x, y, []string{"signal", "noise"}, Config{NumTrees: 50, MinNodeSize: 5, Seed: 42})
	require.NoError(t, err)

	// Predictions track the generating function reasonably well in-range
	pred := f.Predict([]float64{5, 5})
	assert.InDelta(t, 50, pred, 15)

	assert.False(t, math.IsNaN(f.OOBMSE()))
	assert.Greater(t, f.OOBMSE(), 0.0)
}

func TestForestImportances(t *testing.T) {
	x, y := forestFixture(120, 2)

	f, err := Fit(x, y, []string{"signal", "noise"}, Config{NumTrees: 50, Seed: 42})
	require.NoError(t, err)

	imp := f.Importances()
	require.Len(t, imp, 2)

	total := imp[0] + imp[1]
	assert.InDelta(t, 1.0, total, 1e-12)

	// The informative feature dominates the impurity importance
	assert.Greater(t, imp[0], imp[1])
	assert.Greater(t, imp[0], 0.8)
}

func TestForestDeterministic(t *testing.T) {
	x, y := forestFixture(80, 3)
	names := []string{"a", "b"}

	f1, err := Fit(x, y, names, Config{NumTrees: 25, Seed: 7})
	require.NoError(t, err)
	f2, err := Fit(x, y, names, Config{NumTrees: 25, Seed: 7})
	require.NoError(t, err)

	assert.Equal(t, f1.Importances(), f2.Importances())
	assert.Equal(t, f1.OOBMSE(), f2.OOBMSE())
	for _, row := range x[:10] {
		assert.Equal(t, f1.Predict(row), f2.Predict(row))
	}
}

func TestForestDefaults(t *testing.T) {
	x, y := forestFixture(60, 4)

	f, err := Fit(x, y, []string{"a", "b"}, Config{Seed: 1})
	require.NoError(t, err)
	assert.Len(t, f.trees, defaultNumTrees)
}

func TestForestTinyDataset(t *testing.T) {
	// Below twice the minimum node size every tree degenerates to a single
	// leaf: no splits, zero importances, but still a valid model.
	x := [][]float64{{1, 0}, {2, 0}, {3, 0}}
	y := []float64{10, 20, 30}

	f, err := Fit(x, y, []string{"a", "b"}, Config{NumTrees: 10, MinNodeSize: 5, Seed: 1})
	require.NoError(t, err)

	imp := f.Importances()
	assert.Equal(t, []float64{0, 0}, imp)
	assert.InDelta(t, 20, f.Predict([]float64{2, 0}), 10)
}

func TestForestFitErrors(t *testing.T) {
	tests := []struct {
		name  string
		x     [][]float64
		y     []float64
		names []string
	}{
		{
			name:  "empty training set",
			x:     nil,
			y:     nil,
			names: []string{"a"},
		},
		{
			name:  "length mismatch",
			x:     [][]float64{{1}, {2}},
			y:     []float64{1},
			names: []string{"a"},
		},
		{
			name:  "feature name mismatch",
			x:     [][]float64{{1, 2}},
			y:     []float64{1},
			names: []string{"a"},
		},
		{
			name:  "ragged matrix",
			x:     [][]float64{{1, 2}, {1}},
			y:     []float64{1, 2},
			names: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Fit(tt.x, tt.y, tt.names, Config{Seed: 1})
			assert.Error(t, err)
		})
	}
}
