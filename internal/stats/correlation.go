package stats

import (
	"gonum.org/v1/gonum/stat"

	apperrors "github.com/ironlog/liftpredict/internal/errors"
)

// CorrMatrix holds a symmetric Pearson correlation matrix across the
// continuous columns, with unit diagonal.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// At returns the correlation between columns i and j.
func (m *CorrMatrix) At(i, j int) float64 {
	return m.Values[i][j]
}

// CorrelationMatrix computes pairwise Pearson correlations over the given
// columns. All columns must have the same non-zero length; complete-case
// filtering upstream guarantees no NaN cells reach this point.
func CorrelationMatrix(names []string, columns [][]float64) (*CorrMatrix, error) {
	if len(names) != len(columns) {
		return nil, apperrors.NewValidationError("column names and data length mismatch")
	}
	if len(columns) == 0 {
		return nil, apperrors.NewValidationError("no columns to correlate")
	}
	n := len(columns[0])
	if n < 2 {
		return nil, apperrors.NewValidationError("need at least two observations per column", n)
	}
	for i, col := range columns {
		if len(col) != n {
			return nil, apperrors.NewValidationError("column length mismatch", names[i])
		}
	}

	values := make([][]float64, len(columns))
	for i := range values {
		values[i] = make([]float64, len(columns))
		values[i][i] = 1
	}
	for i := 0; i < len(columns); i++ {
		for j := i + 1; j < len(columns); j++ {
			r := stat.Correlation(columns[i], columns[j], nil)
			values[i][j] = r
			values[j][i] = r
		}
	}

	return &CorrMatrix{Columns: names, Values: values}, nil
}
