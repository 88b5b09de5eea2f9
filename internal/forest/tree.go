package forest

import (
	"math/rand"
	"sort"
)

// node is one vertex of a CART regression tree. Leaves carry the mean target
// of their training subset.
type node struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *node
	right     *node
}

type treeParams struct {
	mtry        int
	minNodeSize int
	rng         *rand.Rand
}

// growTree builds a regression tree over the rows referenced by idx.
// importance accumulates the SSE reduction of every accepted split, keyed by
// feature index (impurity importance).
func growTree(x [][]float64, y []float64, idx []int, p treeParams, importance []float64) *node {
	mean, sse := meanSSE(y, idx)
	if len(idx) < 2*p.minNodeSize || sse == 0 {
		return &node{leaf: true, value: mean}
	}

	feature, threshold, reduction, ok := bestSplit(x, y, idx, sse, p)
	if !ok {
		return &node{leaf: true, value: mean}
	}
	importance[feature] += reduction

	var leftIdx, rightIdx []int
	for _, i := range idx {
		if x[i][feature] <= threshold {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}

	return &node{
		feature:   feature,
		threshold: threshold,
		left:      growTree(x, y, leftIdx, p, importance),
		right:     growTree(x, y, rightIdx, p, importance),
	}
}

// bestSplit searches a random mtry-subset of features for the split with the
// largest SSE reduction, honoring the minimum node size on both sides.
func bestSplit(x [][]float64, y []float64, idx []int, parentSSE float64, p treeParams) (feature int, threshold, reduction float64, ok bool) {
	nFeatures := len(x[idx[0]])
	candidates := p.rng.Perm(nFeatures)
	if p.mtry < len(candidates) {
		candidates = candidates[:p.mtry]
	}

	order := make([]int, len(idx))
	best := 0.0
	for _, f := range candidates {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool {
			return x[order[a]][f] < x[order[b]][f]
		})

		// Prefix scan: left side holds order[:i+1].
		var sumL, sqL float64
		var sumR, sqR float64
		for _, i := range order {
			sumR += y[i]
			sqR += y[i] * y[i]
		}
		for i := 0; i < len(order)-1; i++ {
			v := y[order[i]]
			sumL += v
			sqL += v * v
			sumR -= v
			sqR -= v * v

			nL := i + 1
			nR := len(order) - nL
			if nL < p.minNodeSize || nR < p.minNodeSize {
				continue
			}
			// No split between identical feature values.
			if x[order[i]][f] == x[order[i+1]][f] {
				continue
			}

			sseL := sqL - sumL*sumL/float64(nL)
			sseR := sqR - sumR*sumR/float64(nR)
			gain := parentSSE - sseL - sseR
			if gain > best {
				best = gain
				feature = f
				threshold = (x[order[i]][f] + x[order[i+1]][f]) / 2
				ok = true
			}
		}
	}
	return feature, threshold, best, ok
}

func (n *node) predict(row []float64) float64 {
	for !n.leaf {
		if row[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

func meanSSE(y []float64, idx []int) (mean, sse float64) {
	var sum, sq float64
	for _, i := range idx {
		sum += y[i]
		sq += y[i] * y[i]
	}
	n := float64(len(idx))
	mean = sum / n
	sse = sq - sum*sum/n
	if sse < 0 {
		sse = 0
	}
	return mean, sse
}
