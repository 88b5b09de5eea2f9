package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitOneHot(t *testing.T) {
	enc, err := FitOneHot("Sex", []string{"M", "F", "M", "F", "M"})
	require.NoError(t, err)

	// Levels sorted for deterministic column order
	assert.Equal(t, []string{"F", "M"}, enc.Levels())
	assert.Equal(t, []string{"Sex_F", "Sex_M"}, enc.ColumnNames())
}

func TestOneHotTransform(t *testing.T) {
	enc, err := FitOneHot("Equipment", []string{"Raw", "Single-ply", "Wraps"})
	require.NoError(t, err)

	tests := []struct {
		value    string
		expected []float64
	}{
		{"Raw", []float64{1, 0, 0}},
		{"Single-ply", []float64{0, 1, 0}},
		{"Wraps", []float64{0, 0, 1}},
	}

	for _, tt := range tests {
		got, err := enc.Transform(tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got, "value %q", tt.value)
	}

	_, err = enc.Transform("Multi-ply")
	assert.Error(t, err)
}

func TestOneHotCode(t *testing.T) {
	enc, err := FitOneHot("Sex", []string{"M", "F"})
	require.NoError(t, err)

	code, err := enc.Code("F")
	require.NoError(t, err)
	assert.Equal(t, 0.0, code)

	code, err = enc.Code("M")
	require.NoError(t, err)
	assert.Equal(t, 1.0, code)

	_, err = enc.Code("X")
	assert.Error(t, err)
}

func TestFitOneHotErrors(t *testing.T) {
	_, err := FitOneHot("Sex", nil)
	assert.Error(t, err)

	_, err = FitOneHot("Sex", []string{"M", ""})
	assert.Error(t, err)
}
