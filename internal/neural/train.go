package neural

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	apperrors "github.com/ironlog/liftpredict/internal/errors"
)

// TrainConfig holds the training hyperparameters.
type TrainConfig struct {
	Epochs          int
	BatchSize       int
	Patience        int
	ValidationSplit float64
	LearningRate    float64
	Seed            int64
}

// History records per-epoch losses for reporting and plotting.
type History struct {
	TrainLoss    []float64
	ValLoss      []float64
	BestEpoch    int // zero-based index into the loss slices
	StoppedEarly bool
}

// Epochs returns the number of epochs actually run.
func (h *History) Epochs() int {
	return len(h.TrainLoss)
}

// Fit trains the network with mini-batch Adam and MSE loss. A validation
// fraction is carved out of the training partition; training halts when the
// validation loss has not improved for Patience epochs, restoring the
// best-seen weights in either case.
func (n *Network) Fit(x [][]float64, y []float64, cfg TrainConfig) (*History, error) {
	if len(x) != len(y) {
		return nil, apperrors.NewValidationError("feature and target length mismatch", len(x))
	}
	if len(x) == 0 {
		return nil, apperrors.NewValidationError("training set is empty")
	}
	for _, row := range x {
		if len(row) != n.inputDim {
			return nil, apperrors.NewValidationError("feature row width does not match network input", len(row))
		}
	}
	if cfg.Epochs <= 0 || cfg.BatchSize <= 0 || cfg.Patience <= 0 {
		return nil, apperrors.NewValidationError("epochs, batch size, and patience must be positive")
	}
	if cfg.ValidationSplit <= 0 || cfg.ValidationSplit >= 1 {
		return nil, apperrors.NewValidationError("validation split must be in (0,1)", cfg.ValidationSplit)
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = 0.001
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	// Carve the validation set out of the training partition.
	valSize := int(math.Round(cfg.ValidationSplit * float64(len(x))))
	if valSize < 1 || len(x)-valSize < 1 {
		return nil, apperrors.NewValidationError("validation split leaves an empty partition", len(x))
	}
	perm := rng.Perm(len(x))
	var xTrain, xVal [][]float64
	var yTrain, yVal []float64
	for i, p := range perm {
		if i < len(x)-valSize {
			xTrain = append(xTrain, x[p])
			yTrain = append(yTrain, y[p])
		} else {
			xVal = append(xVal, x[p])
			yVal = append(yVal, y[p])
		}
	}

	opt := newAdam(n, cfg.LearningRate)
	hist := &History{}
	best := math.Inf(1)
	bestSnap := n.snapshot()
	sinceImprovement := 0

	order := make([]int, len(xTrain))
	for i := range order {
		order[i] = i
	}

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		for start := 0; start < len(order); start += cfg.BatchSize {
			end := start + cfg.BatchSize
			if end > len(order) {
				end = len(order)
			}
			batch := order[start:end]

			xb := mat.NewDense(len(batch), n.inputDim, nil)
			yb := mat.NewDense(len(batch), 1, nil)
			for i, idx := range batch {
				xb.SetRow(i, xTrain[idx])
				yb.Set(i, 0, yTrain[idx])
			}

			gradW, gradB := n.backward(xb, yb)
			opt.step(n, gradW, gradB)
		}

		trainLoss := n.Evaluate(xTrain, yTrain)
		valLoss := n.Evaluate(xVal, yVal)
		hist.TrainLoss = append(hist.TrainLoss, trainLoss)
		hist.ValLoss = append(hist.ValLoss, valLoss)

		if valLoss < best {
			best = valLoss
			hist.BestEpoch = epoch
			bestSnap = n.snapshot()
			sinceImprovement = 0
		} else {
			sinceImprovement++
			if sinceImprovement >= cfg.Patience {
				hist.StoppedEarly = true
				break
			}
		}
	}

	n.restore(bestSnap)
	return hist, nil
}

// backward computes MSE-loss gradients for one batch.
func (n *Network) backward(xb, yb *mat.Dense) (gradW []*mat.Dense, gradB [][]float64) {
	preacts, acts := n.forward(xb)
	batch, _ := xb.Dims()

	// dLoss/dOutput for mean squared error over the batch.
	out := acts[len(acts)-1]
	delta := mat.NewDense(batch, 1, nil)
	delta.Sub(out, yb)
	delta.Scale(2/float64(batch), delta)

	gradW = make([]*mat.Dense, len(n.layers))
	gradB = make([][]float64, len(n.layers))

	for li := len(n.layers) - 1; li >= 0; li-- {
		l := n.layers[li]
		z := preacts[li]
		in := acts[li]

		if l.activation == ActivationReLU {
			rows, cols := delta.Dims()
			for i := 0; i < rows; i++ {
				for j := 0; j < cols; j++ {
					if z.At(i, j) <= 0 {
						delta.Set(i, j, 0)
					}
				}
			}
		}

		_, inCols := in.Dims()
		dRows, outCols := delta.Dims()

		gw := mat.NewDense(inCols, outCols, nil)
		gw.Mul(in.T(), delta)
		gradW[li] = gw

		gb := make([]float64, outCols)
		for j := 0; j < outCols; j++ {
			for i := 0; i < dRows; i++ {
				gb[j] += delta.At(i, j)
			}
		}
		gradB[li] = gb

		if li > 0 {
			next := mat.NewDense(dRows, inCols, nil)
			next.Mul(delta, l.w.T())
			delta = next
		}
	}
	return gradW, gradB
}

// Evaluate returns the mean squared error of the network over x, y in the
// scaled target space.
func (n *Network) Evaluate(x [][]float64, y []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	var sse float64
	for i, row := range x {
		d := n.Predict(row) - y[i]
		sse += d * d
	}
	return sse / float64(len(x))
}
