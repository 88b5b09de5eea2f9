package encoding

import (
	"github.com/ironlog/liftpredict/internal/types"
)

// FeatureEncoder combines the one-hot encoders for the categorical features
// with min-max scalers for the continuous features and the target. It is
// fitted over the merged dataset (competition records plus the personal
// record) so scaling parameters are shared between training and inference.
type FeatureEncoder struct {
	sex        *OneHotEncoder
	equipment  *OneHotEncoder
	continuous *MinMaxScaler // age, bodyweight
	target     *MinMaxScaler // deadlift
}

// FitFeatureEncoder learns encoding and scaling parameters from the merged
// dataset.
func FitFeatureEncoder(records []types.Record) (*FeatureEncoder, error) {
	sexValues := make([]string, len(records))
	equipValues := make([]string, len(records))
	contRows := make([][]float64, len(records))
	targetRows := make([][]float64, len(records))
	for i, r := range records {
		sexValues[i] = r.Sex
		equipValues[i] = r.Equipment
		contRows[i] = []float64{r.Age, r.BodyweightKg}
		targetRows[i] = []float64{r.BestDeadliftKg}
	}

	sex, err := FitOneHot(types.ColSex, sexValues)
	if err != nil {
		return nil, err
	}
	equipment, err := FitOneHot(types.ColEquipment, equipValues)
	if err != nil {
		return nil, err
	}
	continuous, err := FitMinMax(contRows)
	if err != nil {
		return nil, err
	}
	target, err := FitMinMax(targetRows)
	if err != nil {
		return nil, err
	}

	return &FeatureEncoder{
		sex:        sex,
		equipment:  equipment,
		continuous: continuous,
		target:     target,
	}, nil
}

// FeatureNames returns the encoded column names in row order: scaled
// continuous columns first, then the indicator columns.
func (e *FeatureEncoder) FeatureNames() []string {
	names := []string{types.ColAge, types.ColBodyweightKg}
	names = append(names, e.sex.ColumnNames()...)
	names = append(names, e.equipment.ColumnNames()...)
	return names
}

// Sex exposes the fitted sex encoder for models that want level codes.
func (e *FeatureEncoder) Sex() *OneHotEncoder { return e.sex }

// Equipment exposes the fitted equipment encoder.
func (e *FeatureEncoder) Equipment() *OneHotEncoder { return e.equipment }

// EncodeFeatures produces the network input row for one record.
func (e *FeatureEncoder) EncodeFeatures(r types.Record) ([]float64, error) {
	cont, err := e.continuous.TransformRow([]float64{r.Age, r.BodyweightKg})
	if err != nil {
		return nil, err
	}
	sexCols, err := e.sex.Transform(r.Sex)
	if err != nil {
		return nil, err
	}
	equipCols, err := e.equipment.Transform(r.Equipment)
	if err != nil {
		return nil, err
	}

	row := make([]float64, 0, len(cont)+len(sexCols)+len(equipCols))
	row = append(row, cont...)
	row = append(row, sexCols...)
	row = append(row, equipCols...)
	return row, nil
}

// EncodeTarget scales one target value into [0,1] fitted range.
func (e *FeatureEncoder) EncodeTarget(kg float64) (float64, error) {
	row, err := e.target.TransformRow([]float64{kg})
	if err != nil {
		return 0, err
	}
	return row[0], nil
}

// DecodeTarget maps a scaled network output back to kilograms.
func (e *FeatureEncoder) DecodeTarget(scaled float64) (float64, error) {
	row, err := e.target.InverseRow([]float64{scaled})
	if err != nil {
		return 0, err
	}
	return row[0], nil
}

// EncodeDataset encodes every record into feature rows and scaled targets.
func (e *FeatureEncoder) EncodeDataset(records []types.Record) (x [][]float64, y []float64, err error) {
	x = make([][]float64, len(records))
	y = make([]float64, len(records))
	for i, r := range records {
		x[i], err = e.EncodeFeatures(r)
		if err != nil {
			return nil, nil, err
		}
		y[i], err = e.EncodeTarget(r.BestDeadliftKg)
		if err != nil {
			return nil, nil, err
		}
	}
	return x, y, nil
}
