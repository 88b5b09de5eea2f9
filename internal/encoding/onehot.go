package encoding

import (
	"sort"

	apperrors "github.com/ironlog/liftpredict/internal/errors"
)

// OneHotEncoder maps one categorical column to k binary indicator columns,
// one per observed level (full one-hot, no reference level dropped).
type OneHotEncoder struct {
	column string
	levels []string
	index  map[string]int
}

// FitOneHot learns the level set of a categorical column. Levels are sorted
// so column order is deterministic across runs.
func FitOneHot(column string, values []string) (*OneHotEncoder, error) {
	seen := make(map[string]bool)
	for _, v := range values {
		if v == "" {
			return nil, apperrors.NewValidationError("empty categorical value", column)
		}
		seen[v] = true
	}
	if len(seen) == 0 {
		return nil, apperrors.NewValidationError("no values to encode", column)
	}

	levels := make([]string, 0, len(seen))
	for v := range seen {
		levels = append(levels, v)
	}
	sort.Strings(levels)

	index := make(map[string]int, len(levels))
	for i, l := range levels {
		index[l] = i
	}
	return &OneHotEncoder{column: column, levels: levels, index: index}, nil
}

// Levels returns the learned level set in column order.
func (e *OneHotEncoder) Levels() []string {
	return e.levels
}

// ColumnNames returns the generated indicator column names.
func (e *OneHotEncoder) ColumnNames() []string {
	names := make([]string, len(e.levels))
	for i, l := range e.levels {
		names[i] = e.column + "_" + l
	}
	return names
}

// Code returns the integer level code of a value, used by tree models that
// consume categorical features directly.
func (e *OneHotEncoder) Code(value string) (float64, error) {
	i, ok := e.index[value]
	if !ok {
		return 0, apperrors.NewValidationError("unknown categorical level", e.column+"="+value)
	}
	return float64(i), nil
}

// Transform encodes one value as its indicator vector.
func (e *OneHotEncoder) Transform(value string) ([]float64, error) {
	i, ok := e.index[value]
	if !ok {
		return nil, apperrors.NewValidationError("unknown categorical level", e.column+"="+value)
	}
	out := make([]float64, len(e.levels))
	out[i] = 1
	return out, nil
}
