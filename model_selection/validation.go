package model_selection

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/polyreg/core/model"
	"github.com/YuminosukeSato/polyreg/dataset"
	"github.com/YuminosukeSato/polyreg/metrics"
	"github.com/YuminosukeSato/polyreg/pkg/errors"
	"github.com/YuminosukeSato/polyreg/pkg/log"
)

// CVResult stores cross-validation results
type CVResult struct {
	// Scores は各フォールドのRMSE（フォールド順）
	Scores []float64
	// MeanCoef は各フォールドで学習した係数の要素ごとの平均
	MeanCoef []float64
}

// Mean returns the mean fold RMSE.
func (r *CVResult) Mean() float64 {
	if len(r.Scores) == 0 {
		return 0
	}
	return stat.Mean(r.Scores, nil)
}

// Std returns the sample standard deviation of the fold RMSEs.
func (r *CVResult) Std() float64 {
	if len(r.Scores) <= 1 {
		return 0
	}
	return stat.StdDev(r.Scores, nil)
}

// CrossValidate splits ds into k folds and, for each fold in turn, fits a
// fresh regressor on the other folds concatenated in fold order, predicts the
// held-out features and scores the predictions with RMSE. Only the feature
// columns of the held-out fold reach Predict. Fold progress is logged at debug
// level to logger, or to the default logger when logger is nil.
func CrossValidate(ds dataset.Dataset, newRegressor model.Factory, k int, rng *rand.Rand, logger log.Logger) (*CVResult, error) {
	folds, err := NewKFold(k).Split(ds, rng)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = log.GetLogger()
	}
	logger = logger.With(log.OperationKey, log.OperationCrossValidate, log.PhaseKey, log.PhaseValidation, log.FoldsKey, k)
	if dropped := len(ds) - k*(len(ds)/k); dropped > 0 {
		logger.Debug("rows dropped by fold rounding", log.DroppedKey, dropped)
	}

	result := &CVResult{Scores: make([]float64, k)}
	var coefSum []float64

	for f, fold := range folds {
		var train dataset.Dataset
		for g, other := range folds {
			if g != f {
				train = append(train, other...)
			}
		}

		X, y, err := train.XY()
		if err != nil {
			return nil, errors.Wrapf(err, "fold %d: training set", f)
		}
		testX, testY, err := fold.XY()
		if err != nil {
			return nil, errors.Wrapf(err, "fold %d: held-out set", f)
		}

		reg := newRegressor()
		if err := reg.Fit(X, y); err != nil {
			return nil, errors.Wrapf(err, "fold %d", f)
		}
		preds, err := reg.Predict(testX)
		if err != nil {
			return nil, errors.Wrapf(err, "fold %d", f)
		}
		rmse, err := metrics.RMSE(testY, preds)
		if err != nil {
			return nil, errors.Wrapf(err, "fold %d", f)
		}
		result.Scores[f] = rmse

		coef := reg.Coefficients()
		if coefSum == nil {
			coefSum = make([]float64, len(coef))
		}
		if len(coef) != len(coefSum) {
			return nil, errors.NewDimensionError("CrossValidate", len(coefSum), len(coef), 0)
		}
		floats.Add(coefSum, coef)

		logger.Debug("fold scored", log.FoldKey, f, log.SamplesKey, len(train), log.RMSEKey, rmse)
	}

	floats.Scale(1/float64(k), coefSum)
	result.MeanCoef = coefSum
	return result, nil
}
