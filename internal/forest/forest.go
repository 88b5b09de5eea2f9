package forest

import (
	"math"
	"math/rand"

	apperrors "github.com/ironlog/liftpredict/internal/errors"
)

// Config holds the ensemble hyperparameters. Zero values fall back to the
// regression defaults of the classic ensemble implementation: mtry = p/3
// (at least 1) and a minimum node size of 5.
type Config struct {
	NumTrees    int
	MinNodeSize int
	Mtry        int
	Seed        int64
}

const (
	defaultNumTrees    = 100
	defaultMinNodeSize = 5
)

// Forest is a bagged ensemble of CART regression trees with impurity
// importances and an out-of-bag error estimate.
type Forest struct {
	trees      []*node
	features   []string
	importance []float64
	oobMSE     float64
	oobCovered int
}

// Fit trains the ensemble on x (rows of predictor values, fixed column order
// matching featureNames) against target y.
func Fit(x [][]float64, y []float64, featureNames []string, cfg Config) (*Forest, error) {
	if len(x) == 0 {
		return nil, apperrors.NewValidationError("forest training set is empty")
	}
	if len(x) != len(y) {
		return nil, apperrors.NewValidationError("predictor and target length mismatch", len(x))
	}
	p := len(x[0])
	if p == 0 || p != len(featureNames) {
		return nil, apperrors.NewValidationError("feature names do not match predictor width", len(featureNames))
	}
	for _, row := range x {
		if len(row) != p {
			return nil, apperrors.NewValidationError("ragged predictor matrix")
		}
	}

	if cfg.NumTrees <= 0 {
		cfg.NumTrees = defaultNumTrees
	}
	if cfg.MinNodeSize <= 0 {
		cfg.MinNodeSize = defaultMinNodeSize
	}
	if cfg.Mtry <= 0 {
		cfg.Mtry = p / 3
		if cfg.Mtry < 1 {
			cfg.Mtry = 1
		}
	}

	n := len(x)
	rng := rand.New(rand.NewSource(cfg.Seed))
	f := &Forest{
		trees:      make([]*node, 0, cfg.NumTrees),
		features:   featureNames,
		importance: make([]float64, p),
	}

	oobSum := make([]float64, n)
	oobCount := make([]int, n)
	inBag := make([]bool, n)

	for t := 0; t < cfg.NumTrees; t++ {
		for i := range inBag {
			inBag[i] = false
		}
		bag := make([]int, n)
		for i := range bag {
			j := rng.Intn(n)
			bag[i] = j
			inBag[j] = true
		}

		params := treeParams{
			mtry:        cfg.Mtry,
			minNodeSize: cfg.MinNodeSize,
			rng:         rand.New(rand.NewSource(rng.Int63())),
		}
		tree := growTree(x, y, bag, params, f.importance)
		f.trees = append(f.trees, tree)

		for i := 0; i < n; i++ {
			if !inBag[i] {
				oobSum[i] += tree.predict(x[i])
				oobCount[i]++
			}
		}
	}

	// Out-of-bag MSE over every sample left out by at least one tree.
	var sse float64
	for i := 0; i < n; i++ {
		if oobCount[i] == 0 {
			continue
		}
		d := oobSum[i]/float64(oobCount[i]) - y[i]
		sse += d * d
		f.oobCovered++
	}
	if f.oobCovered > 0 {
		f.oobMSE = sse / float64(f.oobCovered)
	} else {
		f.oobMSE = math.NaN()
	}

	return f, nil
}

// Predict returns the ensemble mean prediction for one predictor row.
func (f *Forest) Predict(row []float64) float64 {
	var sum float64
	for _, t := range f.trees {
		sum += t.predict(row)
	}
	return sum / float64(len(f.trees))
}

// OOBMSE returns the out-of-bag mean squared error.
func (f *Forest) OOBMSE() float64 {
	return f.oobMSE
}

// Importances returns the impurity importances normalized to sum to 1,
// aligned with the feature names passed to Fit. A forest that never split
// returns all zeros.
func (f *Forest) Importances() []float64 {
	total := 0.0
	for _, v := range f.importance {
		total += v
	}
	out := make([]float64, len(f.importance))
	if total == 0 {
		return out
	}
	for i, v := range f.importance {
		out[i] = v / total
	}
	return out
}

// FeatureNames returns the predictor names in importance order alignment.
func (f *Forest) FeatureNames() []string {
	return f.features
}
