// Package linear provides linear regression estimators fitted by online
// stochastic gradient descent and by the regularized normal equations.
package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/polyreg/core/model"
	"github.com/YuminosukeSato/polyreg/pkg/errors"
)

const (
	DefaultLearningRate = 0.25
	DefaultEpochs       = 50
)

// SGDRegressor は確率的勾配降下法（オンライン、1行ずつ即時更新）で
// 線形回帰係数を推定する。
//
// 係数の長さは特徴量数+1。予測は先頭の特徴量数ぶんの係数だけを使う:
//
//	ŷ = Σ coef[j]·x[j]   (j = 0..nFeatures-1)
//
// 基底の0列目は x⁰=1 なので coef[0] が切片として無条件に加算される。
// 更新は1つずらした位置 coef[j+1] に書き込むため、末尾の係数は学習されるが
// 予測には現れない。
// エポック間でシャッフルせず、収束判定も発散の検出も行わない。
type SGDRegressor struct {
	state *model.StateManager

	learningRate float64
	epochs       int

	coef []float64
}

// NewSGDRegressor は新しいSGDRegressorを作成する
func NewSGDRegressor(opts ...SGDOption) *SGDRegressor {
	s := &SGDRegressor{
		state:        model.NewStateManager(),
		learningRate: DefaultLearningRate,
		epochs:       DefaultEpochs,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fit runs exactly epochs × rows updates starting from zero coefficients.
// Each row's error ŷ − y is applied immediately:
//
//	coef[0]   -= lr·error
//	coef[i+1] -= lr·error·x[i]
//
// A diverged fit is not an error; non-finite final coefficients are reported
// through errors.Warn.
func (s *SGDRegressor) Fit(X, y mat.Matrix) error {
	r, c, err := checkXY("SGDRegressor.Fit", X, y)
	if err != nil {
		return err
	}
	if s.epochs < 0 {
		return errors.NewValidationError("epochs", "must be non-negative", s.epochs)
	}

	rows := make([][]float64, r)
	targets := make([]float64, r)
	for i := 0; i < r; i++ {
		rows[i] = mat.Row(nil, i, X)
		targets[i] = y.At(i, 0)
	}

	coef := make([]float64, c+1)
	for epoch := 0; epoch < s.epochs; epoch++ {
		for i, row := range rows {
			errVal := predictRow(coef, row) - targets[i]
			coef[0] -= s.learningRate * errVal
			for j, x := range row {
				coef[j+1] -= s.learningRate * errVal * x
			}
		}
	}

	if err := errors.CheckNumericalStability("SGDRegressor.Fit", coef, s.epochs); err != nil {
		errors.Warn(err)
	}

	s.coef = coef
	s.state.SetFitted(c, r)
	return nil
}

// Predict は各行に対して ŷ = Σ coef[j]·x[j] を返す
func (s *SGDRegressor) Predict(X mat.Matrix) (*mat.VecDense, error) {
	if err := s.state.RequireFitted("SGDRegressor", "Predict"); err != nil {
		return nil, err
	}
	if err := s.state.RequireFeatures("SGDRegressor.Predict", X); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if r == 0 {
		return nil, errors.NewModelError("SGDRegressor.Predict", "empty data", errors.ErrEmptyData)
	}
	preds := mat.NewVecDense(r, nil)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, X)
		preds.SetVec(i, predictRow(s.coef, row))
	}
	return preds, nil
}

// Coefficients returns a copy of all nFeatures+1 coefficients.
func (s *SGDRegressor) Coefficients() []float64 {
	return append([]float64(nil), s.coef...)
}

// IsFitted はモデルが学習済みかどうかを返す
func (s *SGDRegressor) IsFitted() bool {
	return s.state.IsFitted()
}

// predictRow uses coef[:len(row)]; coef must have at least len(row) entries.
func predictRow(coef, row []float64) float64 {
	var yhat float64
	for j, x := range row {
		yhat += coef[j] * x
	}
	return yhat
}
