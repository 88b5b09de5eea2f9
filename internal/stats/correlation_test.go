package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelationMatrix(t *testing.T) {
	names := []string{"a", "b", "c"}
	columns := [][]float64{
		{1, 2, 3, 4},
		{2, 4, 6, 8},     // perfectly correlated with a
		{8, 6, 4.5, 1.5}, // strongly anti-correlated with a
	}

	m, err := CorrelationMatrix(names, columns)
	require.NoError(t, err)
	require.Equal(t, names, m.Columns)

	// Unit diagonal
	for i := range names {
		assert.Equal(t, 1.0, m.At(i, i))
	}

	// Symmetry
	for i := range names {
		for j := range names {
			assert.Equal(t, m.At(i, j), m.At(j, i))
		}
	}

	assert.InDelta(t, 1.0, m.At(0, 1), 1e-12)
	assert.Less(t, m.At(0, 2), -0.9)

	// All entries within [-1, 1]
	for i := range names {
		for j := range names {
			assert.GreaterOrEqual(t, m.At(i, j), -1.0)
			assert.LessOrEqual(t, m.At(i, j), 1.0)
		}
	}
}

func TestCorrelationMatrixErrors(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		columns [][]float64
	}{
		{
			name:    "name count mismatch",
			names:   []string{"a"},
			columns: [][]float64{{1, 2}, {3, 4}},
		},
		{
			name:    "no columns",
			names:   nil,
			columns: nil,
		},
		{
			name:    "single observation",
			names:   []string{"a", "b"},
			columns: [][]float64{{1}, {2}},
		},
		{
			name:    "ragged columns",
			names:   []string{"a", "b"},
			columns: [][]float64{{1, 2, 3}, {1, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CorrelationMatrix(tt.names, tt.columns)
			assert.Error(t, err)
		})
	}
}
