package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/polyreg/pkg/errors"
	"github.com/YuminosukeSato/polyreg/sweep"
)

func sampleResults() *sweep.Results {
	return &sweep.Results{
		Degrees: []sweep.DegreeResult{
			{
				Degree:       1,
				Scores:       []float64{0.5, 0.6},
				SGD:          sweep.Fit{RMSE: 0.55, Coef: []float64{0.1, 0.2, 0.3}},
				LeastSquares: sweep.Fit{RMSE: 0.4, Coef: []float64{1, 2}},
				Ridge:        sweep.Fit{RMSE: 0.41, Coef: []float64{1, 1.9}},
			},
			{
				Degree:       2,
				Scores:       []float64{math.NaN(), 0.3},
				SGD:          sweep.Fit{RMSE: math.NaN()},
				LeastSquares: sweep.Fit{RMSE: 0.2, Coef: []float64{1, 2, 3}},
				Ridge:        sweep.Fit{RMSE: 0.21, Coef: []float64{1, 2, 2.9}},
			},
		},
		BestSGD:          sweep.Best{Degree: 1, RMSE: 0.55, Coef: []float64{0.1, 0.2, 0.3}},
		BestLeastSquares: sweep.Best{Degree: 2, RMSE: 0.2, Coef: []float64{1, 2, 3}},
		BestRidge:        sweep.Best{RMSE: math.Inf(1)},
		Folds:            2,
		Lambda:           1e-9,
	}
}

func TestPrintDegree(t *testing.T) {
	var buf bytes.Buffer
	res := sampleResults()
	require.NoError(t, PrintDegree(&buf, res.Degrees[0], res.Lambda))

	out := buf.String()
	assert.Contains(t, out, "Degree:  1")
	assert.Contains(t, out, "Scores: [0.5 0.6]")
	assert.Contains(t, out, "Mean RMSE (SGD, 2-fold CV): 0.550")
	assert.Contains(t, out, "RMSE (least squares): 0.400")
	assert.Contains(t, out, "RMSE (ridge, lambda=1e-09): 0.410")
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintSummary(&buf, sampleResults(), 7))

	out := buf.String()
	assert.Contains(t, out, "Degree:  2")
	assert.Contains(t, out, "RESULTS")
	assert.Contains(t, out, "Least squares: best degree  2, RMSE 0.200")
	assert.Contains(t, out, "coefficients: [1 2 3]")
	assert.Contains(t, out, "Ridge (lambda=1e-09): no degree with a finite RMSE")
	assert.Contains(t, out, "Predictions written: 7")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestPrintSummaryWriteError(t *testing.T) {
	err := PrintSummary(failingWriter{}, sampleResults(), 0)
	assert.EqualError(t, err, "disk full")
}

func TestPlotRMSE(t *testing.T) {
	for _, name := range []string{"rmse.png", "rmse.svg"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, PlotRMSE(sampleResults(), path))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}

func TestPlotRMSEErrors(t *testing.T) {
	var valErr *errors.ValueError
	assert.True(t, errors.As(PlotRMSE(&sweep.Results{}, filepath.Join(t.TempDir(), "x.png")), &valErr))

	err := PlotRMSE(sampleResults(), filepath.Join(t.TempDir(), "rmse.unknown"))
	assert.Error(t, err)
}

func TestFinitePoints(t *testing.T) {
	pts := finitePoints(sampleResults().Degrees, func(d sweep.DegreeResult) float64 { return d.SGD.RMSE })
	require.Len(t, pts, 1)
	assert.Equal(t, 1.0, pts[0].X)
	assert.Equal(t, 0.55, pts[0].Y)
}
