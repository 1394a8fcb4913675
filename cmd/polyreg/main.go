// Command polyreg sweeps polynomial degrees over a training CSV, reports the
// best degree per estimation method and writes test-set predictions.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/YuminosukeSato/polyreg/dataset"
	"github.com/YuminosukeSato/polyreg/pkg/errors"
	"github.com/YuminosukeSato/polyreg/pkg/log"
	"github.com/YuminosukeSato/polyreg/preprocessing"
	"github.com/YuminosukeSato/polyreg/report"
	"github.com/YuminosukeSato/polyreg/sweep"
)

type config struct {
	trainPath string
	testPath  string
	outPath   string
	plotPath  string

	minDegree    int
	maxDegree    int
	folds        int
	learningRate float64
	epochs       int
	lambda       float64
	seed         uint64
	workers      int

	logLevel string
}

func parseFlags(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("polyreg", flag.ContinueOnError)
	fs.StringVar(&cfg.trainPath, "train", "train.csv", "training CSV (feature, target)")
	fs.StringVar(&cfg.testPath, "test", "test.csv", "test CSV (feature only)")
	fs.StringVar(&cfg.outPath, "out", "out.csv", "predictions output CSV")
	fs.StringVar(&cfg.plotPath, "plot", "", "optional RMSE-vs-degree plot (png, svg, pdf)")
	fs.IntVar(&cfg.minDegree, "min-degree", sweep.DefaultMinDegree, "lowest polynomial degree")
	fs.IntVar(&cfg.maxDegree, "max-degree", sweep.DefaultMaxDegree, "highest polynomial degree")
	fs.IntVar(&cfg.folds, "folds", sweep.DefaultFolds, "cross-validation folds for SGD")
	fs.Float64Var(&cfg.learningRate, "lr", 0.25, "SGD learning rate")
	fs.IntVar(&cfg.epochs, "epochs", 50, "SGD epochs")
	fs.Float64Var(&cfg.lambda, "lambda", sweep.DefaultLambda, "ridge regularization strength")
	fs.Uint64Var(&cfg.seed, "seed", sweep.DefaultSeed, "fold shuffling seed")
	fs.IntVar(&cfg.workers, "workers", 1, "degrees evaluated concurrently")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// flagExitCode is 0 for -h/-help and 2 for any other flag error.
func flagExitCode(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	return 2
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(flagExitCode(err))
	}
	if err := log.SetupLogger(cfg.logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		fields := []any{log.ErrAttrKey, err}
		if code, hint := classify(err); code != "" {
			fields = append(fields, log.ErrorCodeKey, code, log.SuggestionKey, hint)
		}
		log.GetLogger().Error("polyreg failed", fields...)
		stop()
		os.Exit(1)
	}
}

// classify maps known failures to an error code and a hint for the user.
func classify(err error) (code, hint string) {
	var (
		parseErr *errors.ParseError
		valErr   *errors.ValidationError
	)
	switch {
	case errors.Is(err, errors.ErrSingularMatrix):
		return log.ErrorSingularMatrix, "use a lower -max-degree; the unregularized normal equations are singular"
	case errors.As(err, &parseErr):
		return log.ErrorParse, "check the CSV field at the reported line and column"
	case errors.As(err, &valErr):
		return log.ErrorInvalidInput, "check the flag values"
	}
	return "", ""
}

func run(ctx context.Context, cfg config, stdout io.Writer) error {
	logger := log.GetLogger()

	train, err := dataset.LoadCSVFile(cfg.trainPath)
	if err != nil {
		return err
	}
	test, err := dataset.LoadCSVFile(cfg.testPath)
	if err != nil {
		return err
	}
	logger.Info("data loaded",
		log.PathKey, cfg.trainPath, log.SamplesKey, len(train), log.FeaturesKey, train.NumFeatures(),
		"test.samples", len(test),
	)

	// 学習データの統計量でテストデータも正規化する
	scaler := preprocessing.NewMinMaxScaler()
	if err := scaler.FitTransform(train); err != nil {
		return errors.Wrap(err, "normalize training data")
	}
	if err := scaler.Transform(test); err != nil {
		return errors.Wrap(err, "normalize test data")
	}
	logger.Debug("features normalized",
		log.ModelNameKey, "MinMaxScaler", log.OperationKey, log.OperationTransform,
		"data_min", scaler.DataMin, "data_max", scaler.DataMax,
	)

	s, err := sweep.New(
		sweep.WithDegrees(cfg.minDegree, cfg.maxDegree),
		sweep.WithFolds(cfg.folds),
		sweep.WithLearningRate(cfg.learningRate),
		sweep.WithEpochs(cfg.epochs),
		sweep.WithLambda(cfg.lambda),
		sweep.WithSeed(cfg.seed),
		sweep.WithWorkers(cfg.workers),
		sweep.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	logger.Info("starting degree sweep", log.PhaseKey, log.PhaseTraining)
	res, err := s.Run(ctx, train)
	if err != nil {
		return err
	}

	preds, err := res.PredictTest(test)
	if err != nil {
		return err
	}
	if err := dataset.WritePredictionsFile(cfg.outPath, preds); err != nil {
		return err
	}
	logger.Info("predictions written",
		log.PhaseKey, log.PhaseInference, log.OperationKey, log.OperationPredict,
		log.PathKey, cfg.outPath, log.PredsKey, len(preds), log.DegreeKey, res.BestLeastSquares.Degree,
	)

	if cfg.plotPath != "" {
		if err := report.PlotRMSE(res, cfg.plotPath); err != nil {
			return err
		}
		logger.Info("plot saved", log.PathKey, cfg.plotPath)
	}

	return report.PrintSummary(stdout, res, len(preds))
}
