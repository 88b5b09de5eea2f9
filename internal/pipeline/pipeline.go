package pipeline

import (
	"io"
	"math"
	"os"
	"time"

	"github.com/ironlog/liftpredict/internal/config"
	"github.com/ironlog/liftpredict/internal/dataset"
	"github.com/ironlog/liftpredict/internal/encoding"
	apperrors "github.com/ironlog/liftpredict/internal/errors"
	"github.com/ironlog/liftpredict/internal/forest"
	"github.com/ironlog/liftpredict/internal/monitoring"
	"github.com/ironlog/liftpredict/internal/neural"
	"github.com/ironlog/liftpredict/internal/stats"
	"github.com/ironlog/liftpredict/internal/types"
)

// KgToLbs converts kilograms to pounds.
const KgToLbs = 2.20462262185

// Forest predictor column order: age, bodyweight, sex code, equipment code.
var forestFeatureNames = []string{
	types.ColAge, types.ColBodyweightKg, types.ColSex, types.ColEquipment,
}

// Result collects everything the pipeline computed, for reporting and tests.
type Result struct {
	LoadedRows   int
	FilteredRows int

	Summary []dataset.ColumnSummary
	Corr    *stats.CorrMatrix
	ANOVA   []stats.ANOVAResult

	ForestOOBMSE      float64
	ForestImportances []float64
	ForestFeatures    []string

	History     *neural.History
	TestMSE     float64 // scaled target space
	TestRMSEKg  float64 // original units
	PredictedKg float64
	PredictedLb float64
}

// Pipeline runs the full analysis once, top to bottom.
type Pipeline struct {
	cfg    *config.Config
	logger *monitoring.Logger
	out    io.Writer
}

// New creates a pipeline writing its report to stdout.
func New(cfg *config.Config, logger *monitoring.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, logger: logger, out: os.Stdout}
}

// SetOutput redirects the report, used by tests.
func (p *Pipeline) SetOutput(w io.Writer) {
	p.out = w
}

// Run executes the eight pipeline stages in order and renders the report.
func (p *Pipeline) Run() (*Result, error) {
	res := &Result{}

	// Stage 1: load the competition CSV.
	start := time.Now()
	records, err := dataset.Load(p.cfg.DataFile)
	if err != nil {
		return nil, apperrors.ToAppError(err).WithStage("load")
	}
	res.LoadedRows = len(records)
	p.logger.StageLogger("load", time.Since(start), "rows", len(records))

	// Stage 2: complete cases and year cutoff.
	start = time.Now()
	filtered := dataset.Filter(records, p.cfg.MinYear)
	if len(filtered) == 0 {
		return nil, apperrors.NewDataError("no rows survive filtering", nil).WithStage("filter")
	}
	res.FilteredRows = len(filtered)
	res.Summary = dataset.Summarize(filtered)
	p.logger.DatasetLogger("filter", len(records), len(filtered))
	p.logger.StageLogger("filter", time.Since(start), "min_year", p.cfg.MinYear)

	// Stage 3: correlation matrix and one-way ANOVA.
	start = time.Now()
	res.Corr, err = stats.CorrelationMatrix(
		[]string{types.ColAge, types.ColBodyweightKg, types.ColDeadliftKg},
		[][]float64{
			dataset.Ages(filtered),
			dataset.Bodyweights(filtered),
			dataset.Deadlifts(filtered),
		})
	if err != nil {
		return nil, apperrors.ToAppError(err).WithStage("stats")
	}
	for _, g := range []struct {
		feature string
		groups  map[string][]float64
	}{
		{types.ColSex, dataset.GroupBySex(filtered)},
		{types.ColEquipment, dataset.GroupByEquipment(filtered)},
	} {
		a, err := stats.OneWayANOVA(g.feature, g.groups)
		if err != nil {
			return nil, apperrors.ToAppError(err).WithStage("stats")
		}
		res.ANOVA = append(res.ANOVA, a)
	}
	p.logger.StageLogger("stats", time.Since(start))

	// Stage 5 precedes encoding: the personal record joins the dataset before
	// the scaler is fitted so scaling parameters are shared.
	start = time.Now()
	personal, err := dataset.LoadPersonal(p.cfg.PersonalFile)
	if err != nil {
		return nil, apperrors.ToAppError(err).WithStage("personal")
	}
	merged := dataset.Merge(filtered, personal)
	p.logger.StageLogger("personal", time.Since(start), "merged_rows", len(merged))

	// Stage 6: encode and normalize on the merged set.
	start = time.Now()
	encoder, err := encoding.FitFeatureEncoder(merged)
	if err != nil {
		return nil, apperrors.ToAppError(err).WithStage("encode")
	}

	// Stage 4: random forest baseline on the raw predictors.
	if err := p.runForest(filtered, encoder, res); err != nil {
		return nil, err
	}

	// The personal row is removed again before the split: only the original
	// records are encoded for training.
	x, y, err := encoder.EncodeDataset(filtered)
	if err != nil {
		return nil, apperrors.ToAppError(err).WithStage("encode")
	}
	personalRow, err := encoder.EncodeFeatures(personal)
	if err != nil {
		return nil, apperrors.ToAppError(err).WithStage("encode")
	}
	xTrain, yTrain, xTest, yTest, err := encoding.TrainTestSplit(x, y, p.cfg.TestFraction, p.cfg.Seed)
	if err != nil {
		return nil, apperrors.ToAppError(err).WithStage("encode")
	}
	p.logger.StageLogger("encode", time.Since(start),
		"features", len(encoder.FeatureNames()),
		"train_rows", len(xTrain),
		"test_rows", len(xTest),
	)

	// Stage 7: train the network.
	start = time.Now()
	net := neural.NewRegressionNetwork(len(encoder.FeatureNames()), p.cfg.Seed)
	hist, err := net.Fit(xTrain, yTrain, neural.TrainConfig{
		Epochs:          p.cfg.Epochs,
		BatchSize:       p.cfg.BatchSize,
		Patience:        p.cfg.Patience,
		ValidationSplit: p.cfg.ValidationSplit,
		LearningRate:    p.cfg.LearningRate,
		Seed:            p.cfg.Seed,
	})
	if err != nil {
		return nil, apperrors.ToAppError(err).WithStage("train")
	}
	for i := range hist.TrainLoss {
		p.logger.TrainingLogger(i, hist.TrainLoss[i], hist.ValLoss[i])
	}
	res.History = hist
	res.TestMSE = net.Evaluate(xTest, yTest)
	res.TestRMSEKg, err = p.testRMSEKg(net, encoder, xTest, yTest)
	if err != nil {
		return nil, apperrors.ToAppError(err).WithStage("train")
	}
	p.logger.StageLogger("train", time.Since(start),
		"epochs", hist.Epochs(),
		"best_epoch", hist.BestEpoch,
		"stopped_early", hist.StoppedEarly,
		"test_mse", res.TestMSE,
	)

	// Stage 8: predict the personal record in both unit systems. The network
	// output lives in the scaled target space and is inverse-transformed.
	start = time.Now()
	scaled := net.Predict(personalRow)
	kg, err := encoder.DecodeTarget(scaled)
	if err != nil {
		return nil, apperrors.ToAppError(err).WithStage("predict")
	}
	res.PredictedKg = kg
	res.PredictedLb = kg * KgToLbs
	p.logger.PredictionLogger(res.PredictedKg, res.PredictedLb)
	p.logger.StageLogger("predict", time.Since(start))

	p.render(res)
	return res, nil
}

// runForest fits the bagged-tree baseline over the four raw predictors.
func (p *Pipeline) runForest(filtered []types.Record, encoder *encoding.FeatureEncoder, res *Result) error {
	start := time.Now()
	fx := make([][]float64, len(filtered))
	fy := make([]float64, len(filtered))
	for i, r := range filtered {
		sexCode, err := encoder.Sex().Code(r.Sex)
		if err != nil {
			return apperrors.ToAppError(err).WithStage("forest")
		}
		equipCode, err := encoder.Equipment().Code(r.Equipment)
		if err != nil {
			return apperrors.ToAppError(err).WithStage("forest")
		}
		fx[i] = []float64{r.Age, r.BodyweightKg, sexCode, equipCode}
		fy[i] = r.BestDeadliftKg
	}

	f, err := forest.Fit(fx, fy, forestFeatureNames, forest.Config{
		NumTrees:    p.cfg.Trees,
		MinNodeSize: p.cfg.MinNodeSize,
		Seed:        p.cfg.Seed,
	})
	if err != nil {
		return apperrors.ToAppError(err).WithStage("forest")
	}
	res.ForestOOBMSE = f.OOBMSE()
	res.ForestImportances = f.Importances()
	res.ForestFeatures = f.FeatureNames()
	p.logger.StageLogger("forest", time.Since(start),
		"trees", p.cfg.Trees,
		"oob_mse", res.ForestOOBMSE,
	)
	return nil
}

// testRMSEKg evaluates the held-out error in original units by
// inverse-scaling predictions and targets.
func (p *Pipeline) testRMSEKg(net *neural.Network, encoder *encoding.FeatureEncoder, xTest [][]float64, yTest []float64) (float64, error) {
	var sse float64
	for i, row := range xTest {
		predKg, err := encoder.DecodeTarget(net.Predict(row))
		if err != nil {
			return 0, err
		}
		actualKg, err := encoder.DecodeTarget(yTest[i])
		if err != nil {
			return 0, err
		}
		d := predKg - actualKg
		sse += d * d
	}
	return math.Sqrt(sse / float64(len(xTest))), nil
}
