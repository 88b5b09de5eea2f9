package dataset

import (
	"github.com/ironlog/liftpredict/internal/types"
)

// Filter applies complete-case filtering and the year cutoff. Records dated
// before minYear or carrying any missing value are dropped. The input slice
// is not modified.
func Filter(records []types.Record, minYear int) []types.Record {
	filtered := make([]types.Record, 0, len(records))
	for _, r := range records {
		if !r.Complete() {
			continue
		}
		if r.Year < minYear {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// Merge appends the personal record to a copy of the dataset. The merged set
// is used only to fit shared scaling parameters; the personal row is removed
// again before the train/test split.
func Merge(records []types.Record, personal types.Record) []types.Record {
	merged := make([]types.Record, 0, len(records)+1)
	merged = append(merged, records...)
	merged = append(merged, personal)
	return merged
}

// Column extractors used by the statistics and modeling stages.

// Ages returns the age column.
func Ages(records []types.Record) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Age
	}
	return out
}

// Bodyweights returns the bodyweight column in kg.
func Bodyweights(records []types.Record) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.BodyweightKg
	}
	return out
}

// Deadlifts returns the target column in kg.
func Deadlifts(records []types.Record) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.BestDeadliftKg
	}
	return out
}

// GroupBySex groups the target by sex level.
func GroupBySex(records []types.Record) map[string][]float64 {
	groups := make(map[string][]float64)
	for _, r := range records {
		groups[r.Sex] = append(groups[r.Sex], r.BestDeadliftKg)
	}
	return groups
}

// GroupByEquipment groups the target by equipment level.
func GroupByEquipment(records []types.Record) map[string][]float64 {
	groups := make(map[string][]float64)
	for _, r := range records {
		groups[r.Equipment] = append(groups[r.Equipment], r.BestDeadliftKg)
	}
	return groups
}
