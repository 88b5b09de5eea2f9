package neural

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Activation selects a layer activation function.
type Activation int

const (
	ActivationReLU Activation = iota
	ActivationLinear
)

// Hidden layer widths of the regression network: 16 ReLU, 8 ReLU, 1 linear.
const (
	hidden1Units = 16
	hidden2Units = 8
	outputUnits  = 1
)

// layer is one dense layer: out = activation(in*W + b).
type layer struct {
	w          *mat.Dense // inDim x outDim
	b          []float64
	activation Activation
}

// Network is a small feed-forward regression network.
type Network struct {
	layers   []*layer
	inputDim int
}

// NewRegressionNetwork builds the 3-layer dense regression network with
// He-style normal initialization seeded for reproducibility.
func NewRegressionNetwork(inputDim int, seed int64) *Network {
	rng := rand.New(rand.NewSource(seed))
	n := &Network{inputDim: inputDim}
	n.layers = []*layer{
		newLayer(rng, inputDim, hidden1Units, ActivationReLU),
		newLayer(rng, hidden1Units, hidden2Units, ActivationReLU),
		newLayer(rng, hidden2Units, outputUnits, ActivationLinear),
	}
	return n
}

func newLayer(rng *rand.Rand, inDim, outDim int, act Activation) *layer {
	data := make([]float64, inDim*outDim)
	scale := math.Sqrt(2 / float64(inDim))
	for i := range data {
		data[i] = rng.NormFloat64() * scale
	}
	return &layer{
		w:          mat.NewDense(inDim, outDim, data),
		b:          make([]float64, outDim),
		activation: act,
	}
}

// InputDim returns the expected feature-row width.
func (n *Network) InputDim() int {
	return n.inputDim
}

// forward runs a batch through the network, caching pre-activations and
// activations for backpropagation. activations[0] is the input batch.
func (n *Network) forward(x *mat.Dense) (preacts, activations []*mat.Dense) {
	activations = append(activations, x)
	cur := x
	for _, l := range n.layers {
		rows, _ := cur.Dims()
		_, outDim := l.w.Dims()

		z := mat.NewDense(rows, outDim, nil)
		z.Mul(cur, l.w)
		for i := 0; i < rows; i++ {
			for j := 0; j < outDim; j++ {
				z.Set(i, j, z.At(i, j)+l.b[j])
			}
		}
		preacts = append(preacts, z)

		a := mat.NewDense(rows, outDim, nil)
		switch l.activation {
		case ActivationReLU:
			a.Apply(func(_, _ int, v float64) float64 {
				if v < 0 {
					return 0
				}
				return v
			}, z)
		default:
			a.CloneFrom(z)
		}
		activations = append(activations, a)
		cur = a
	}
	return preacts, activations
}

// Predict runs a single encoded feature row through the network.
func (n *Network) Predict(row []float64) float64 {
	x := mat.NewDense(1, len(row), append([]float64(nil), row...))
	_, acts := n.forward(x)
	return acts[len(acts)-1].At(0, 0)
}

// PredictBatch predicts every row of x.
func (n *Network) PredictBatch(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		out[i] = n.Predict(row)
	}
	return out
}

// snapshot deep-copies all weights so early stopping can restore the
// best-seen state.
func (n *Network) snapshot() [][]*mat.Dense {
	// index 0: weight matrices, index 1: bias row vectors
	weights := make([]*mat.Dense, len(n.layers))
	biases := make([]*mat.Dense, len(n.layers))
	for i, l := range n.layers {
		weights[i] = mat.DenseCopyOf(l.w)
		biases[i] = mat.NewDense(1, len(l.b), append([]float64(nil), l.b...))
	}
	return [][]*mat.Dense{weights, biases}
}

func (n *Network) restore(snap [][]*mat.Dense) {
	for i, l := range n.layers {
		l.w.CloneFrom(snap[0][i])
		copy(l.b, snap[1][i].RawMatrix().Data)
	}
}
