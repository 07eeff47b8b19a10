// Package fitjob runs the offline training pipeline: load the award CSV,
// derive the log target, encode features, hold out a test split, fit the
// boosted regressor, score it and write the artifact.
package fitjob

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Caseyio/federal-bid-prediction/internal/artifact"
	"github.com/Caseyio/federal-bid-prediction/internal/dataset"
	"github.com/Caseyio/federal-bid-prediction/internal/encode"
	"github.com/Caseyio/federal-bid-prediction/internal/evaluate"
	"github.com/Caseyio/federal-bid-prediction/internal/gbm"
	"github.com/Caseyio/federal-bid-prediction/internal/split"
)

// DefaultDataPath is the cleaned award extract the job reads by default.
const DefaultDataPath = "data/health_it_cleaned.csv"

// Excluded columns never become features: the raw and derived targets,
// the identifier and the contract dates.
var Excluded = []string{
	dataset.ColAwardAmount,
	dataset.ColLogAward,
	dataset.ColAwardID,
	dataset.ColStartDate,
	dataset.ColEndDate,
}

// Options configures a run. Empty paths and a zero ratio fall back to the
// defaults. Params is used as given unless it is entirely zero, since zero
// is meaningful for MaxDepth, Lambda, Gamma and MinChildWeight. Seed is
// always taken as given, so start from DefaultOptions to get 42.
type Options struct {
	DataPath  string
	OutPath   string
	Seed      int64
	TestRatio float64
	Params    gbm.Params
	// PlotPath, when set, receives a predicted-vs-actual chart of the test
	// rows. The extension picks the format.
	PlotPath string
	Logger   zerolog.Logger
}

// DefaultOptions returns the stock run configuration.
func DefaultOptions() Options {
	return Options{
		DataPath:  DefaultDataPath,
		OutPath:   artifact.DefaultPath,
		Seed:      split.DefaultSeed,
		TestRatio: split.DefaultTestRatio,
		Params:    gbm.DefaultParams(),
		Logger:    zerolog.Nop(),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.DataPath == "" {
		o.DataPath = d.DataPath
	}
	if o.OutPath == "" {
		o.OutPath = d.OutPath
	}
	if o.TestRatio == 0 {
		o.TestRatio = d.TestRatio
	}
	if o.Params == (gbm.Params{}) {
		o.Params = d.Params
	}
	return o
}

// Result carries what a run produced. TestX and Predictions let callers check
// that the saved model reproduces the scored predictions.
type Result struct {
	RunID        string
	Report       evaluate.Report
	Features     []string
	Predictions  []float64
	TestX        [][]float64
	TestY        []float64
	ArtifactPath string
}

// Run executes the pipeline and prints the two held-out metric lines to
// stdout. Cancellation is honored between stages and boosting rounds.
func Run(ctx context.Context, opts Options, stdout io.Writer) (*Result, error) {
	opts = opts.withDefaults()
	log := opts.Logger
	runID := uuid.NewString()
	log = log.With().Str("run_id", runID).Logger()
	start := time.Now()

	frame, err := dataset.LoadCSV(opts.DataPath)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", opts.DataPath).Int("rows", frame.Len()).Int("columns", len(frame.Header)).Msg("dataset loaded")
	if err := frame.Require(dataset.RequiredColumns...); err != nil {
		return nil, fmt.Errorf("%s: %w", opts.DataPath, err)
	}

	y, err := dataset.DeriveLogTarget(frame, dataset.ColAwardAmount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.DataPath, err)
	}

	var enc encode.OneHot
	X, err := enc.FitTransform(frame, Excluded)
	if err != nil {
		return nil, err
	}
	features := enc.FeatureNames()
	log.Info().Int("features", len(features)).Msg("features encoded")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx, err := split.TrainTest(len(X), opts.TestRatio, opts.Seed)
	if err != nil {
		return nil, err
	}
	trainX, trainY := split.Take(X, y, idx.Train)
	testX, testY := split.Take(X, y, idx.Test)
	log.Info().Int("train", len(trainX)).Int("test", len(testX)).Int64("seed", opts.Seed).Msg("rows split")

	model := gbm.New(gbm.WithParams(opts.Params))
	fitStart := time.Now()
	if err := model.FitContext(ctx, trainX, trainY); err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}
	log.Info().Int("trees", len(model.Trees)).Dur("took", time.Since(fitStart)).Msg("model fitted")

	pred, err := model.Predict(testX)
	if err != nil {
		return nil, err
	}
	report, err := evaluate.Score(testY, pred, len(trainX))
	if err != nil {
		return nil, err
	}
	if err := report.Print(stdout); err != nil {
		return nil, fmt.Errorf("write metrics: %w", err)
	}
	log.Info().Float64("log_rmse", report.LogRMSE).Float64("log_r2", report.LogR2).
		Float64("dollar_rmse", report.DollarRMSE).Msg("held-out scores")
	if opts.PlotPath != "" {
		if err := evaluate.PlotPredictions(opts.PlotPath, testY, pred, report); err != nil {
			return nil, err
		}
		log.Info().Str("path", opts.PlotPath).Msg("held-out plot written")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	meta := artifact.Metadata{
		RunID:      runID,
		CreatedAt:  time.Now().UTC(),
		DataPath:   opts.DataPath,
		Target:     dataset.ColLogAward,
		Features:   features,
		Excluded:   append([]string(nil), Excluded...),
		Seed:       opts.Seed,
		TestRatio:  opts.TestRatio,
		Report:     report,
		Params:     opts.Params,
		Importance: model.Importance(),
	}
	if err := artifact.Save(opts.OutPath, artifact.Artifact{Meta: meta, Model: model}); err != nil {
		return nil, err
	}
	log.Info().Str("path", opts.OutPath).Dur("total", time.Since(start)).Msg("artifact written")

	return &Result{
		RunID:        runID,
		Report:       report,
		Features:     features,
		Predictions:  pred,
		TestX:        testX,
		TestY:        testY,
		ArtifactPath: opts.OutPath,
	}, nil
}
