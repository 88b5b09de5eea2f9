package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	apperrors "github.com/ironlog/liftpredict/internal/errors"
)

// ANOVAResult holds a one-way ANOVA of the target against one categorical
// feature.
type ANOVAResult struct {
	Feature    string
	F          float64
	P          float64
	DFBetween  int
	DFWithin   int
	GroupSizes map[string]int
	GroupMeans map[string]float64
}

// Levels returns the group levels in deterministic order.
func (r ANOVAResult) Levels() []string {
	levels := make([]string, 0, len(r.GroupMeans))
	for level := range r.GroupMeans {
		levels = append(levels, level)
	}
	sort.Strings(levels)
	return levels
}

// OneWayANOVA computes a one-way analysis of variance of the target grouped
// by the levels of one categorical feature. The p-value is the upper tail of
// the F distribution with (k-1, N-k) degrees of freedom.
func OneWayANOVA(feature string, groups map[string][]float64) (ANOVAResult, error) {
	var zero ANOVAResult

	k := len(groups)
	if k < 2 {
		return zero, apperrors.NewValidationError("ANOVA needs at least two group levels", feature)
	}

	n := 0
	var grandSum float64
	for _, ys := range groups {
		if len(ys) == 0 {
			return zero, apperrors.NewValidationError("ANOVA group level is empty", feature)
		}
		n += len(ys)
		for _, y := range ys {
			grandSum += y
		}
	}
	if n-k < 1 {
		return zero, apperrors.NewValidationError("not enough observations for ANOVA", feature)
	}
	grandMean := grandSum / float64(n)

	sizes := make(map[string]int, k)
	means := make(map[string]float64, k)
	var ssBetween, ssWithin float64
	for level, ys := range groups {
		m := stat.Mean(ys, nil)
		sizes[level] = len(ys)
		means[level] = m
		d := m - grandMean
		ssBetween += float64(len(ys)) * d * d
		for _, y := range ys {
			ssWithin += (y - m) * (y - m)
		}
	}

	dfBetween := k - 1
	dfWithin := n - k
	msBetween := ssBetween / float64(dfBetween)
	msWithin := ssWithin / float64(dfWithin)

	var f, p float64
	if msWithin == 0 {
		// All within-group variance is zero; any between-group difference is
		// infinitely significant.
		if msBetween == 0 {
			f, p = 0, 1
		} else {
			f, p = math.Inf(1), 0
		}
	} else {
		f = msBetween / msWithin
		dist := distuv.F{D1: float64(dfBetween), D2: float64(dfWithin)}
		p = 1 - dist.CDF(f)
	}
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}

	return ANOVAResult{
		Feature:    feature,
		F:          f,
		P:          p,
		DFBetween:  dfBetween,
		DFWithin:   dfWithin,
		GroupSizes: sizes,
		GroupMeans: means,
	}, nil
}
