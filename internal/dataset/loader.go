package dataset

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/ironlog/liftpredict/internal/errors"
	"github.com/ironlog/liftpredict/internal/types"
)

// Load reads the competition CSV and projects each row onto the selected
// column subset. Rows with unparseable numeric cells keep NaN in that cell;
// completeness is decided later by Filter.
func Load(path string) ([]types.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewDataError("open competition csv", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperrors.NewDataError("competition csv is empty", nil)
		}
		return nil, apperrors.NewDataError("read csv header", err)
	}

	idx, err := columnIndex(header,
		types.ColName, types.ColSex, types.ColEquipment,
		types.ColAge, types.ColBodyweightKg, types.ColDeadliftKg, types.ColDate)
	if err != nil {
		return nil, err
	}

	var records []types.Record
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, apperrors.NewDataError("read csv row", err)
		}

		records = append(records, types.Record{
			Name:           cell(rec, idx[types.ColName]),
			Sex:            cell(rec, idx[types.ColSex]),
			Equipment:      cell(rec, idx[types.ColEquipment]),
			Age:            parseFloat(cell(rec, idx[types.ColAge])),
			BodyweightKg:   parseFloat(cell(rec, idx[types.ColBodyweightKg])),
			BestDeadliftKg: parseFloat(cell(rec, idx[types.ColDeadliftKg])),
			Year:           parseYear(cell(rec, idx[types.ColDate])),
		})
	}

	if len(records) == 0 {
		return nil, apperrors.NewDataError("competition csv has no data rows", nil)
	}
	return records, nil
}

// LoadPersonal reads the single personal record. The file must contain a
// header and exactly one data row with columns
// Name,Sex,Equipment,Age,BodyweightKg,Best3DeadliftKg,Year.
func LoadPersonal(path string) (types.Record, error) {
	var zero types.Record

	f, err := os.Open(path)
	if err != nil {
		return zero, apperrors.NewDataError("open personal csv", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return zero, apperrors.NewDataError("read personal csv", err)
	}
	if len(rows) != 2 {
		return zero, apperrors.NewValidationError("personal csv must contain a header and exactly one record", len(rows))
	}

	idx, err := columnIndex(rows[0],
		types.ColName, types.ColSex, types.ColEquipment,
		types.ColAge, types.ColBodyweightKg, types.ColDeadliftKg, "Year")
	if err != nil {
		return zero, err
	}

	rec := rows[1]
	year, err := strconv.Atoi(strings.TrimSpace(cell(rec, idx["Year"])))
	if err != nil {
		return zero, apperrors.NewValidationError("personal record Year must be an integer", cell(rec, idx["Year"]))
	}

	personal := types.Record{
		Name:           cell(rec, idx[types.ColName]),
		Sex:            cell(rec, idx[types.ColSex]),
		Equipment:      cell(rec, idx[types.ColEquipment]),
		Age:            parseFloat(cell(rec, idx[types.ColAge])),
		BodyweightKg:   parseFloat(cell(rec, idx[types.ColBodyweightKg])),
		BestDeadliftKg: parseFloat(cell(rec, idx[types.ColDeadliftKg])),
		Year:           year,
	}
	if !personal.Complete() {
		return zero, apperrors.NewValidationError("personal record has missing values")
	}
	return personal, nil
}

func columnIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, apperrors.NewValidationError("missing required column", col)
		}
	}
	return idx, nil
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func parseFloat(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// parseYear derives the competition year from an ISO-like date string.
func parseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return y
}
