package encoding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func splitFixture(n int) ([][]float64, []float64) {
	x := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = []float64{float64(i)}
		y[i] = float64(i)
	}
	return x, y
}

func TestTrainTestSplitSizes(t *testing.T) {
	tests := []struct {
		n            int
		testFraction float64
	}{
		{n: 10, testFraction: 0.2},
		{n: 5, testFraction: 0.2},
		{n: 7, testFraction: 0.3},
		{n: 100, testFraction: 0.25},
	}

	for _, tt := range tests {
		x, y := splitFixture(tt.n)
		xTrain, yTrain, xTest, yTest, err := TrainTestSplit(x, y, tt.testFraction, 42)
		require.NoError(t, err)

		expectedTrain := int(math.Round((1 - tt.testFraction) * float64(tt.n)))
		assert.Len(t, xTrain, expectedTrain)
		assert.Len(t, yTrain, expectedTrain)
		assert.Len(t, xTest, tt.n-expectedTrain)
		assert.Len(t, yTest, tt.n-expectedTrain)
	}
}

func TestTrainTestSplitPartition(t *testing.T) {
	x, y := splitFixture(20)
	xTrain, yTrain, xTest, yTest, err := TrainTestSplit(x, y, 0.2, 7)
	require.NoError(t, err)

	// Every row lands in exactly one partition with its own target
	seen := make(map[float64]bool)
	for i, row := range xTrain {
		assert.Equal(t, row[0], yTrain[i])
		assert.False(t, seen[row[0]])
		seen[row[0]] = true
	}
	for i, row := range xTest {
		assert.Equal(t, row[0], yTest[i])
		assert.False(t, seen[row[0]])
		seen[row[0]] = true
	}
	assert.Len(t, seen, 20)
}

func TestTrainTestSplitReproducible(t *testing.T) {
	x, y := splitFixture(30)

	xTrain1, _, xTest1, _, err := TrainTestSplit(x, y, 0.2, 99)
	require.NoError(t, err)
	xTrain2, _, xTest2, _, err := TrainTestSplit(x, y, 0.2, 99)
	require.NoError(t, err)

	assert.Equal(t, xTrain1, xTrain2)
	assert.Equal(t, xTest1, xTest2)
}

func TestTrainTestSplitErrors(t *testing.T) {
	x, y := splitFixture(3)

	// Length mismatch
	_, _, _, _, err := TrainTestSplit(x, y[:2], 0.2, 1)
	assert.Error(t, err)

	// Split would leave the test partition empty
	_, _, _, _, err = TrainTestSplit(x, y, 0.05, 1)
	assert.Error(t, err)
}
