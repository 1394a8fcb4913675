package sweep

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/polyreg/dataset"
	"github.com/YuminosukeSato/polyreg/pkg/errors"
	"github.com/YuminosukeSato/polyreg/pkg/log"
)

// quadratic は x ∈ [0, 1] 上の y = 1 + 2x - 3x² に決定的なノイズを加えたデータ
func quadratic(n int) dataset.Dataset {
	ds := make(dataset.Dataset, n)
	for i := range ds {
		x := float64(i) / float64(n-1)
		noise := 0.01 * math.Sin(float64(7*i))
		ds[i] = []float64{x, 1 + 2*x - 3*x*x + noise}
	}
	return ds
}

func TestRun(t *testing.T) {
	s, err := New(WithDegrees(1, 4), WithLogger(log.NewTestLogger(log.LevelError)))
	require.NoError(t, err)

	res, err := s.Run(context.Background(), quadratic(60))
	require.NoError(t, err)
	require.Len(t, res.Degrees, 4)

	minLS := math.Inf(1)
	for i, d := range res.Degrees {
		assert.Equal(t, i+1, d.Degree)
		assert.Len(t, d.Scores, DefaultFolds)
		assert.Len(t, d.SGD.Coef, d.Degree+2, "SGD keeps one coefficient more than the feature count")
		assert.Len(t, d.LeastSquares.Coef, d.Degree+1)
		assert.Len(t, d.Ridge.Coef, d.Degree+1)
		assert.False(t, math.IsNaN(d.SGD.RMSE))
		minLS = math.Min(minLS, d.LeastSquares.RMSE)
	}

	assert.Equal(t, minLS, res.BestLeastSquares.RMSE)
	assert.GreaterOrEqual(t, res.BestLeastSquares.Degree, 2, "data is quadratic")
	assert.Less(t, res.BestLeastSquares.RMSE, 0.02)
	assert.True(t, res.BestSGD.Found())
	assert.True(t, res.BestRidge.Found())
	assert.Equal(t, DefaultFolds, res.Folds)
	assert.Equal(t, DefaultLambda, res.Lambda)

	best := res.Degrees[res.BestLeastSquares.Degree-1]
	assert.Equal(t, best.LeastSquares.Coef, res.BestLeastSquares.Coef)
}

func TestRunIndependentOfWorkerCount(t *testing.T) {
	train := quadratic(45)
	quiet := WithLogger(log.NewTestLogger(log.LevelError))

	seq, err := New(WithDegrees(1, 6), WithLearningRate(0.1), WithWorkers(1), quiet)
	require.NoError(t, err)
	par, err := New(WithDegrees(1, 6), WithLearningRate(0.1), WithWorkers(4), quiet)
	require.NoError(t, err)

	a, err := seq.Run(context.Background(), train)
	require.NoError(t, err)
	b, err := par.Run(context.Background(), train)
	require.NoError(t, err)

	assert.Equal(t, a.Degrees, b.Degrees)
	assert.Equal(t, a.BestSGD, b.BestSGD)
	assert.Equal(t, a.BestLeastSquares, b.BestLeastSquares)
	assert.Equal(t, a.BestRidge, b.BestRidge)
}

func TestRunSeedChangesFolds(t *testing.T) {
	train := quadratic(40)
	quiet := WithLogger(log.NewTestLogger(log.LevelError))

	s1, err := New(WithDegrees(2, 2), WithSeed(1), quiet)
	require.NoError(t, err)
	s2, err := New(WithDegrees(2, 2), WithSeed(2), quiet)
	require.NoError(t, err)

	a, err := s1.Run(context.Background(), train)
	require.NoError(t, err)
	b, err := s2.Run(context.Background(), train)
	require.NoError(t, err)

	assert.NotEqual(t, a.Degrees[0].Scores, b.Degrees[0].Scores)
	// 閉形式の解はフォールドに依存しない
	assert.Equal(t, a.Degrees[0].LeastSquares, b.Degrees[0].LeastSquares)
}

func TestRunSingularAborts(t *testing.T) {
	// x が定数なので [1, x] の列が一致し、λ=0 の正規方程式は特異
	train := make(dataset.Dataset, 16)
	for i := range train {
		train[i] = []float64{1, float64(i)}
	}

	s, err := New(WithDegrees(1, 3), WithLogger(log.NewTestLogger(log.LevelError)))
	require.NoError(t, err)

	_, err = s.Run(context.Background(), train)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSingularMatrix))
	assert.Contains(t, err.Error(), "degree 1")
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := New(WithDegrees(1, 3), WithLogger(log.NewTestLogger(log.LevelError)))
	require.NoError(t, err)

	_, err = s.Run(ctx, quadratic(20))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunEmpty(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	_, err = s.Run(context.Background(), nil)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestRunLogs(t *testing.T) {
	logger := log.NewTestLogger(log.LevelDebug)
	s, err := New(WithDegrees(1, 2), WithLogger(logger))
	require.NoError(t, err)

	_, err = s.Run(context.Background(), quadratic(20))
	require.NoError(t, err)

	assert.True(t, logger.ContainsMessage("sweep started"))
	assert.True(t, logger.ContainsMessage("degree evaluated"))
	assert.True(t, logger.ContainsMessage("closed-form fit"))
	assert.True(t, logger.ContainsMessage("fold scored"), "fold lines reach the injected logger")
	assert.True(t, logger.ContainsField(log.MethodKey, "sgd_cv"))
	assert.True(t, logger.ContainsMessage("sweep finished"))
	assert.True(t, logger.ContainsField(log.DegreeKey, 2.0))
	assert.True(t, logger.ContainsField(log.MethodKey, "ridge"))
	assert.True(t, logger.ContainsField(log.OperationKey, log.OperationSweep))
}

func TestRunDivergedSGDIsExcluded(t *testing.T) {
	var warnings []error
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	defer errors.SetWarningHandler(func(error) {})

	logger := log.NewTestLogger(log.LevelWarn)
	s, err := New(WithDegrees(1, 2), WithLearningRate(50), WithLogger(logger))
	require.NoError(t, err)

	res, err := s.Run(context.Background(), quadratic(20))
	require.NoError(t, err, "divergence is not an error")

	assert.False(t, res.BestSGD.Found())
	assert.True(t, res.BestLeastSquares.Found())
	assert.True(t, logger.ContainsMessage("degree excluded from sgd selection"))
	assert.NotEmpty(t, warnings)
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name  string
		opt   Option
		param string
	}{
		{"zero min degree", WithDegrees(0, 3), "min_degree"},
		{"inverted range", WithDegrees(4, 3), "max_degree"},
		{"one fold", WithFolds(1), "folds"},
		{"negative epochs", WithEpochs(-1), "epochs"},
		{"zero lambda", WithLambda(0), "lambda"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opt)
			var valErr *errors.ValidationError
			require.True(t, errors.As(err, &valErr))
			assert.Equal(t, tt.param, valErr.ParamName)
		})
	}
}
