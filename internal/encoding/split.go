package encoding

import (
	"math"
	"math/rand"

	apperrors "github.com/ironlog/liftpredict/internal/errors"
)

// TrainTestSplit draws a single random split: round((1-testFraction)*N) rows
// for training, the remainder for testing. The draw is seeded so a fixed
// seed reproduces the partition exactly.
func TrainTestSplit(x [][]float64, y []float64, testFraction float64, seed int64) (xTrain [][]float64, yTrain []float64, xTest [][]float64, yTest []float64, err error) {
	if len(x) != len(y) {
		return nil, nil, nil, nil, apperrors.NewValidationError("feature and target length mismatch", len(x))
	}
	n := len(x)
	trainSize := int(math.Round((1 - testFraction) * float64(n)))
	if trainSize < 1 || trainSize >= n {
		return nil, nil, nil, nil, apperrors.NewValidationError("split leaves an empty partition", n)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	for i, p := range perm {
		if i < trainSize {
			xTrain = append(xTrain, x[p])
			yTrain = append(yTrain, y[p])
		} else {
			xTest = append(xTest, x[p])
			yTest = append(yTest, y[p])
		}
	}
	return xTrain, yTrain, xTest, yTest, nil
}
