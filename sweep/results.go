package sweep

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/polyreg/dataset"
	"github.com/YuminosukeSato/polyreg/pkg/errors"
	"github.com/YuminosukeSato/polyreg/preprocessing"
)

// Fit is the score and coefficients of one estimation method at one degree.
type Fit struct {
	RMSE float64
	Coef []float64
}

// DegreeResult holds everything computed for a single basis degree.
type DegreeResult struct {
	Degree int

	// Scores は SGD の各フォールドのRMSE
	Scores []float64

	// SGD は交差検証の平均RMSEとフォールド平均の係数（切片を含む）
	SGD Fit
	// LeastSquares は λ=0 の正規方程式を学習データ全体に当てはめた結果
	LeastSquares Fit
	// Ridge は λ>0 の結果
	Ridge Fit
}

// Best is the lowest-RMSE degree of one method. Degree is 0 when no degree
// produced a finite RMSE.
type Best struct {
	Degree int
	RMSE   float64
	Coef   []float64
}

// Found reports whether a best degree was selected.
func (b Best) Found() bool {
	return b.Degree != 0
}

// Results is the outcome of a full sweep.
type Results struct {
	// Degrees は次数の昇順
	Degrees []DegreeResult

	BestSGD          Best
	BestLeastSquares Best
	BestRidge        Best

	Folds  int
	Lambda float64
}

// selectBest scans in ascending degree order and keeps a candidate only if it
// is strictly lower, so the first of several equal RMSEs wins and NaN never does.
func selectBest(degrees []DegreeResult, pick func(DegreeResult) Fit) Best {
	best := Best{RMSE: math.Inf(1)}
	for _, d := range degrees {
		f := pick(d)
		if f.RMSE < best.RMSE {
			best = Best{Degree: d.Degree, RMSE: f.RMSE, Coef: f.Coef}
		}
	}
	return best
}

func (r *Results) selectAll() {
	r.BestSGD = selectBest(r.Degrees, func(d DegreeResult) Fit { return d.SGD })
	r.BestLeastSquares = selectBest(r.Degrees, func(d DegreeResult) Fit { return d.LeastSquares })
	r.BestRidge = selectBest(r.Degrees, func(d DegreeResult) Fit { return d.Ridge })
}

// PredictTest expands the normalized, target-less test rows at the best
// unregularized least-squares degree and applies that degree's coefficients.
// It returns one prediction per test row.
func (r *Results) PredictTest(test dataset.Dataset) ([]float64, error) {
	best := r.BestLeastSquares
	if !best.Found() {
		return nil, errors.NewValueError("PredictTest", "no degree produced a finite least-squares RMSE")
	}
	if len(test) == 0 {
		return []float64{}, nil
	}

	features, err := preprocessing.BasisFeatures(test, best.Degree)
	if err != nil {
		return nil, err
	}
	A, err := features.Matrix()
	if err != nil {
		return nil, err
	}
	if _, c := A.Dims(); c != len(best.Coef) {
		return nil, errors.NewDimensionError("PredictTest", len(best.Coef), c, 1)
	}

	coef := mat.NewVecDense(len(best.Coef), append([]float64(nil), best.Coef...))
	var preds mat.VecDense
	preds.MulVec(A, coef)
	return mat.Col(nil, 0, &preds), nil
}
