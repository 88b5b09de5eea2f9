package neural

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// adam implements the adaptive-moment optimizer with bias correction.
type adam struct {
	lr    float64
	beta1 float64
	beta2 float64
	eps   float64
	t     int

	mW, vW []*mat.Dense
	mB, vB [][]float64
}

func newAdam(n *Network, lr float64) *adam {
	a := &adam{lr: lr, beta1: 0.9, beta2: 0.999, eps: 1e-8}
	for _, l := range n.layers {
		rows, cols := l.w.Dims()
		a.mW = append(a.mW, mat.NewDense(rows, cols, nil))
		a.vW = append(a.vW, mat.NewDense(rows, cols, nil))
		a.mB = append(a.mB, make([]float64, len(l.b)))
		a.vB = append(a.vB, make([]float64, len(l.b)))
	}
	return a
}

// step applies one Adam update given per-layer gradients.
func (a *adam) step(n *Network, gradW []*mat.Dense, gradB [][]float64) {
	a.t++
	c1 := 1 - math.Pow(a.beta1, float64(a.t))
	c2 := 1 - math.Pow(a.beta2, float64(a.t))

	for li, l := range n.layers {
		w := l.w.RawMatrix().Data
		g := gradW[li].RawMatrix().Data
		m := a.mW[li].RawMatrix().Data
		v := a.vW[li].RawMatrix().Data
		for i := range w {
			m[i] = a.beta1*m[i] + (1-a.beta1)*g[i]
			v[i] = a.beta2*v[i] + (1-a.beta2)*g[i]*g[i]
			mHat := m[i] / c1
			vHat := v[i] / c2
			w[i] -= a.lr * mHat / (math.Sqrt(vHat) + a.eps)
		}

		gb := gradB[li]
		mb := a.mB[li]
		vb := a.vB[li]
		for i := range l.b {
			mb[i] = a.beta1*mb[i] + (1-a.beta1)*gb[i]
			vb[i] = a.beta2*vb[i] + (1-a.beta2)*gb[i]*gb[i]
			mHat := mb[i] / c1
			vHat := vb[i] / c2
			l.b[i] -= a.lr * mHat / (math.Sqrt(vHat) + a.eps)
		}
	}
}
