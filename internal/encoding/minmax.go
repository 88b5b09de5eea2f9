package encoding

import (
	"math"

	apperrors "github.com/ironlog/liftpredict/internal/errors"
)

// MinMaxScaler rescales each column linearly so the observed minimum maps to
// 0 and the observed maximum to 1. Values outside the fitted range transform
// outside [0,1]; that is intentional for held-out data.
type MinMaxScaler struct {
	mins []float64
	maxs []float64
}

// FitMinMax learns per-column minima and maxima from the given rows.
// A zero-range column cannot be scaled and is rejected.
func FitMinMax(rows [][]float64) (*MinMaxScaler, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewValidationError("no rows to fit scaler")
	}
	width := len(rows[0])
	if width == 0 {
		return nil, apperrors.NewValidationError("no columns to fit scaler")
	}

	mins := make([]float64, width)
	maxs := make([]float64, width)
	for j := 0; j < width; j++ {
		mins[j] = math.Inf(1)
		maxs[j] = math.Inf(-1)
	}
	for _, row := range rows {
		if len(row) != width {
			return nil, apperrors.NewValidationError("ragged rows in scaler input")
		}
		for j, v := range row {
			if math.IsNaN(v) {
				return nil, apperrors.NewDataError("NaN reached the scaler; complete-case filtering failed upstream", nil)
			}
			if v < mins[j] {
				mins[j] = v
			}
			if v > maxs[j] {
				maxs[j] = v
			}
		}
	}
	for j := 0; j < width; j++ {
		if mins[j] == maxs[j] {
			return nil, apperrors.NewDataError("zero-range column cannot be min-max scaled", nil)
		}
	}
	return &MinMaxScaler{mins: mins, maxs: maxs}, nil
}

// TransformRow scales one row in place-safe fashion.
func (s *MinMaxScaler) TransformRow(row []float64) ([]float64, error) {
	if len(row) != len(s.mins) {
		return nil, apperrors.NewValidationError("row width does not match fitted scaler", len(row))
	}
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.mins[j]) / (s.maxs[j] - s.mins[j])
	}
	return out, nil
}

// Transform scales a batch of rows.
func (s *MinMaxScaler) Transform(rows [][]float64) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		scaled, err := s.TransformRow(row)
		if err != nil {
			return nil, err
		}
		out[i] = scaled
	}
	return out, nil
}

// InverseRow maps a scaled row back to original units.
func (s *MinMaxScaler) InverseRow(row []float64) ([]float64, error) {
	if len(row) != len(s.mins) {
		return nil, apperrors.NewValidationError("row width does not match fitted scaler", len(row))
	}
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = v*(s.maxs[j]-s.mins[j]) + s.mins[j]
	}
	return out, nil
}
