package dataset

import (
	"gonum.org/v1/gonum/stat"

	"github.com/ironlog/liftpredict/internal/types"
)

// ColumnSummary captures descriptive statistics for one continuous column.
type ColumnSummary struct {
	Name string
	N    int
	Min  float64
	Max  float64
	Mean float64
	Std  float64
}

// Summarize computes descriptive statistics over the continuous columns of a
// complete-case dataset.
func Summarize(records []types.Record) []ColumnSummary {
	cols := []struct {
		name   string
		values []float64
	}{
		{types.ColAge, Ages(records)},
		{types.ColBodyweightKg, Bodyweights(records)},
		{types.ColDeadliftKg, Deadlifts(records)},
	}

	out := make([]ColumnSummary, 0, len(cols))
	for _, c := range cols {
		if len(c.values) == 0 {
			out = append(out, ColumnSummary{Name: c.name})
			continue
		}
		min, max := c.values[0], c.values[0]
		for _, v := range c.values[1:] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		out = append(out, ColumnSummary{
			Name: c.name,
			N:    len(c.values),
			Min:  min,
			Max:  max,
			Mean: stat.Mean(c.values, nil),
			Std:  stat.StdDev(c.values, nil),
		})
	}
	return out
}
