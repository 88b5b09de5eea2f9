package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironlog/liftpredict/internal/types"
)

func completeRecord(year int) types.Record {
	return types.Record{
		Name:           "Lifter",
		Sex:            "F",
		Equipment:      "Raw",
		Age:            30,
		BodyweightKg:   70,
		BestDeadliftKg: 150,
		Year:           year,
	}
}

func TestFilter(t *testing.T) {
	missingAge := completeRecord(2015)
	missingAge.Age = math.NaN()
	missingSex := completeRecord(2015)
	missingSex.Sex = ""

	records := []types.Record{
		completeRecord(2009), // before cutoff
		completeRecord(2010), // on cutoff
		completeRecord(2020),
		missingAge,
		missingSex,
	}

	filtered := Filter(records, 2010)
	require.Len(t, filtered, 2)
	for _, r := range filtered {
		assert.True(t, r.Complete())
		assert.GreaterOrEqual(t, r.Year, 2010)
	}

	// Input slice untouched
	assert.Len(t, records, 5)
}

func TestFilterAllDropped(t *testing.T) {
	records := []types.Record{completeRecord(1999)}
	assert.Empty(t, Filter(records, 2010))
}

func TestMerge(t *testing.T) {
	records := []types.Record{completeRecord(2015), completeRecord(2016)}
	personal := completeRecord(2023)
	personal.Name = "Me"

	merged := Merge(records, personal)
	assert.Len(t, merged, len(records)+1)
	assert.Equal(t, "Me", merged[len(merged)-1].Name)
	// Original slice keeps its length
	assert.Len(t, records, 2)
}

func TestGroupers(t *testing.T) {
	a := completeRecord(2015)
	b := completeRecord(2016)
	b.Sex = "M"
	b.Equipment = "Single-ply"
	b.BestDeadliftKg = 240

	bySex := GroupBySex([]types.Record{a, b})
	require.Len(t, bySex, 2)
	assert.Equal(t, []float64{150}, bySex["F"])
	assert.Equal(t, []float64{240}, bySex["M"])

	byEquip := GroupByEquipment([]types.Record{a, b})
	require.Len(t, byEquip, 2)
	assert.Equal(t, []float64{240}, byEquip["Single-ply"])
}

func TestSummarize(t *testing.T) {
	a := completeRecord(2015)
	b := completeRecord(2016)
	b.Age = 40
	b.BodyweightKg = 90
	b.BestDeadliftKg = 250

	summary := Summarize([]types.Record{a, b})
	require.Len(t, summary, 3)

	age := summary[0]
	assert.Equal(t, types.ColAge, age.Name)
	assert.Equal(t, 2, age.N)
	assert.Equal(t, 30.0, age.Min)
	assert.Equal(t, 40.0, age.Max)
	assert.Equal(t, 35.0, age.Mean)

	deadlift := summary[2]
	assert.Equal(t, types.ColDeadliftKg, deadlift.Name)
	assert.Equal(t, 150.0, deadlift.Min)
	assert.Equal(t, 250.0, deadlift.Max)
	assert.Equal(t, 200.0, deadlift.Mean)
}
