package types

import "math"

// Column names expected in the competition CSV.
const (
	ColName         = "Name"
	ColSex          = "Sex"
	ColEquipment    = "Equipment"
	ColAge          = "Age"
	ColBodyweightKg = "BodyweightKg"
	ColDeadliftKg   = "Best3DeadliftKg"
	ColDate         = "Date"
)

// Record represents one competition result row after column selection.
// Missing numeric cells are NaN, missing categorical cells are empty strings.
type Record struct {
	Name           string  `json:"name"`
	Sex            string  `json:"sex"`
	Equipment      string  `json:"equipment"`
	Age            float64 `json:"age"`
	BodyweightKg   float64 `json:"bodyweight_kg"`
	BestDeadliftKg float64 `json:"best_deadlift_kg"`
	Year           int     `json:"year"`
}

// Complete reports whether the record has no missing values across the
// selected columns.
func (r Record) Complete() bool {
	if r.Sex == "" || r.Equipment == "" {
		return false
	}
	if math.IsNaN(r.Age) || math.IsNaN(r.BodyweightKg) || math.IsNaN(r.BestDeadliftKg) {
		return false
	}
	return r.Year > 0
}
