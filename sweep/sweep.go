// Package sweep drives polynomial degree selection: for every degree it
// scores cross-validated SGD and closed-form least squares (plain and ridge)
// and picks the best degree per method.
package sweep

import (
	"context"
	"math"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/polyreg/core/model"
	"github.com/YuminosukeSato/polyreg/core/parallel"
	"github.com/YuminosukeSato/polyreg/dataset"
	"github.com/YuminosukeSato/polyreg/linear"
	"github.com/YuminosukeSato/polyreg/metrics"
	"github.com/YuminosukeSato/polyreg/model_selection"
	"github.com/YuminosukeSato/polyreg/pkg/errors"
	"github.com/YuminosukeSato/polyreg/pkg/log"
	"github.com/YuminosukeSato/polyreg/preprocessing"
)

// Sweeper evaluates every degree in [minDegree, maxDegree].
type Sweeper struct {
	minDegree, maxDegree int
	folds                int
	learningRate         float64
	epochs               int
	lambda               float64
	seed                 uint64
	workers              int
	logger               log.Logger
}

// New returns a Sweeper configured by opts.
func New(opts ...Option) (*Sweeper, error) {
	s := defaults()
	for _, opt := range opts {
		opt(s)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sweeper) validate() error {
	switch {
	case s.minDegree < 1:
		return errors.NewValidationError("min_degree", "must be at least 1", s.minDegree)
	case s.maxDegree < s.minDegree:
		return errors.NewValidationError("max_degree", "must not be below min_degree", s.maxDegree)
	case s.folds < 2:
		return errors.NewValidationError("folds", "must be at least 2", s.folds)
	case s.epochs < 0:
		return errors.NewValidationError("epochs", "must be non-negative", s.epochs)
	case s.lambda <= 0 || math.IsNaN(s.lambda):
		return errors.NewValidationError("lambda", "ridge fit needs a positive lambda", s.lambda)
	}
	return nil
}

// Run sweeps all degrees over the normalized training set. Any estimator
// error aborts the sweep and is returned wrapped with its degree. A cancelled
// ctx makes Run return ctx.Err().
//
// Each degree draws its folds from a PCG generator seeded with (seed, degree),
// so results do not depend on the worker count.
func (s *Sweeper) Run(ctx context.Context, train dataset.Dataset) (*Results, error) {
	if len(train) == 0 {
		return nil, errors.NewModelError("Sweeper.Run", "empty data", errors.ErrEmptyData)
	}

	logger := s.logger
	if logger == nil {
		logger = log.GetLogger()
	}
	logger = logger.With(log.OperationKey, log.OperationSweep, log.ComponentKey, "sweep")

	n := s.maxDegree - s.minDegree + 1
	degrees := make([]DegreeResult, n)
	errs := make([]error, n)
	var failed atomic.Bool

	logger.Info("sweep started",
		log.SamplesKey, len(train),
		"sweep.min_degree", s.minDegree,
		"sweep.max_degree", s.maxDegree,
		log.FoldsKey, s.folds,
		log.LearningRateKey, s.learningRate,
		log.EpochKey, s.epochs,
		log.RegularizationKey, s.lambda,
		log.RandomSeedKey, s.seed,
		log.WorkersKey, s.workers,
	)
	start := time.Now()

	parallel.ParallelizeWorkers(n, s.workers, func(i int) {
		if failed.Load() {
			return
		}
		if err := ctx.Err(); err != nil {
			errs[i] = err
			failed.Store(true)
			return
		}
		degrees[i], errs[i] = s.evaluateSafe(train, s.minDegree+i, logger)
		if errs[i] != nil {
			failed.Store(true)
		}
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i, err := range errs {
		if err != nil {
			logger.Error("sweep aborted", log.DegreeKey, s.minDegree+i, log.ErrAttrKey, err)
			return nil, errors.Wrapf(err, "degree %d", s.minDegree+i)
		}
	}

	res := &Results{Degrees: degrees, Folds: s.folds, Lambda: s.lambda}
	res.selectAll()

	logger.Info("sweep finished",
		log.DurationMsKey, time.Since(start).Milliseconds(),
		"best.sgd", res.BestSGD.Degree,
		"best.least_squares", res.BestLeastSquares.Degree,
		"best.ridge", res.BestRidge.Degree,
	)
	return res, nil
}

// evaluateSafe turns a panic inside one degree into a PanicError.
func (s *Sweeper) evaluateSafe(train dataset.Dataset, degree int, logger log.Logger) (DegreeResult, error) {
	var res DegreeResult
	err := errors.SafeExecute("sweep.degree", func() error {
		var err error
		res, err = s.evaluate(train, degree, logger.With(log.DegreeKey, degree))
		return err
	})
	return res, err
}

func (s *Sweeper) evaluate(train dataset.Dataset, degree int, logger log.Logger) (DegreeResult, error) {
	res := DegreeResult{Degree: degree}

	expanded, err := preprocessing.Basis(train, degree)
	if err != nil {
		return res, err
	}

	newSGD := func() model.Regressor {
		return linear.NewSGDRegressor(linear.WithLearningRate(s.learningRate), linear.WithEpochs(s.epochs))
	}
	rng := rand.New(rand.NewPCG(s.seed, uint64(degree)))
	cv, err := model_selection.CrossValidate(expanded, newSGD, s.folds, rng, logger.With(log.MethodKey, "sgd_cv"))
	if err != nil {
		return res, errors.Wrap(err, "sgd cross-validation")
	}
	res.Scores = cv.Scores
	res.SGD = Fit{RMSE: cv.Mean(), Coef: cv.MeanCoef}
	if err := errors.CheckScalar("sweep.sgd_cv", res.SGD.RMSE, degree); err != nil {
		logger.Warn("sgd rmse is not finite; degree excluded from sgd selection", log.ErrAttrKey, err)
	}

	// 閉形式の解はCVを使わず学習データ全体で評価する
	X, y, err := expanded.XY()
	if err != nil {
		return res, err
	}
	if res.LeastSquares, err = fitClosedForm(X, y, 0, logger.With(log.MethodKey, "least_squares")); err != nil {
		return res, errors.Wrap(err, "least squares")
	}
	if res.Ridge, err = fitClosedForm(X, y, s.lambda, logger.With(log.MethodKey, "ridge")); err != nil {
		return res, errors.Wrap(err, "ridge")
	}

	logger.Info("degree evaluated",
		log.RMSEKey, res.SGD.RMSE,
		"cv.rmse_std", cv.Std(),
		"least_squares.rmse", res.LeastSquares.RMSE,
		"ridge.rmse", res.Ridge.RMSE,
	)
	return res, nil
}

func fitClosedForm(X *mat.Dense, y *mat.VecDense, lambda float64, logger log.Logger) (Fit, error) {
	ls := linear.NewLeastSquares(linear.WithLambda(lambda))
	if err := ls.Fit(X, y); err != nil {
		return Fit{}, err
	}
	preds, err := ls.Predict(X)
	if err != nil {
		return Fit{}, err
	}
	rmse, err := metrics.RMSE(y, preds)
	if err != nil {
		return Fit{}, err
	}

	if logger.Enabled(context.Background(), log.LevelDebug) {
		fields := []any{log.RMSEKey, rmse, log.RegularizationKey, lambda}
		if mae, err := metrics.MAE(y, preds); err == nil {
			fields = append(fields, log.MAEKey, mae)
		}
		if r2, err := metrics.R2Score(y, preds); err == nil {
			fields = append(fields, log.R2ScoreKey, r2)
		}
		logger.Debug("closed-form fit", fields...)
	}
	return Fit{RMSE: rmse, Coef: ls.Coefficients()}, nil
}
