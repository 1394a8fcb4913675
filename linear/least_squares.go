package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/polyreg/core/model"
	"github.com/YuminosukeSato/polyreg/pkg/errors"
)

// LeastSquares は正規方程式 (λI + AᵀA) coef = Aᵀy を解いて係数を求める。
// λ = 0 で通常の最小二乗法、λ > 0 でリッジ（Tikhonov）回帰になる。
//
// A に切片列は追加しない。多項式基底の x^0 列がその役割を持つ。
type LeastSquares struct {
	state *model.StateManager

	lambda float64

	coef *mat.VecDense
}

// NewLeastSquares は新しいLeastSquaresを作成する
func NewLeastSquares(opts ...LeastSquaresOption) *LeastSquares {
	ls := &LeastSquares{state: model.NewStateManager()}
	for _, opt := range opts {
		opt(ls)
	}
	return ls
}

// Fit solves the regularized normal equations.
//
// The symmetric system is factorized with Cholesky; if it is not numerically
// positive definite the solve falls back to LU. An exactly singular system
// fails with ErrSingularMatrix. An ill-conditioned one keeps the solution and
// emits a ConditionWarning.
func (ls *LeastSquares) Fit(A, y mat.Matrix) error {
	const op = "LeastSquares.Fit"

	r, c, err := checkXY(op, A, y)
	if err != nil {
		return err
	}
	if ls.lambda < 0 || math.IsNaN(ls.lambda) {
		return errors.NewValidationError("lambda", "must be non-negative", ls.lambda)
	}

	// gram = λI + AᵀA
	var gram mat.SymDense
	gram.SymOuterK(1, A.T())
	for i := 0; i < c; i++ {
		gram.SetSym(i, i, gram.At(i, i)+ls.lambda)
	}

	yVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}
	var aty mat.VecDense
	aty.MulVec(A.T(), yVec)

	coef := mat.NewVecDense(c, nil)
	var chol mat.Cholesky
	if chol.Factorize(&gram) {
		err = chol.SolveVecTo(coef, &aty)
	} else {
		err = coef.SolveVec(&gram, &aty)
	}

	if err != nil {
		var cond mat.Condition
		switch {
		case errors.As(err, &cond) && !math.IsInf(float64(cond), 1):
			errors.Warn(errors.NewConditionWarning(op, float64(cond), ls.lambda))
		case errors.Is(err, mat.ErrSingular), errors.As(err, &cond):
			return errors.NewModelError(op, "singular system", errors.ErrSingularMatrix)
		default:
			return errors.Wrap(err, op)
		}
	}

	if errors.CheckNumericalStability(op, coef.RawVector().Data, 0) != nil {
		return errors.NewModelError(op, "non-finite solution", errors.ErrSingularMatrix)
	}

	ls.coef = coef
	ls.state.SetFitted(c, r)
	return nil
}

// Predict は A·coef を返す
func (ls *LeastSquares) Predict(A mat.Matrix) (*mat.VecDense, error) {
	if err := ls.state.RequireFitted("LeastSquares", "Predict"); err != nil {
		return nil, err
	}
	if err := ls.state.RequireFeatures("LeastSquares.Predict", A); err != nil {
		return nil, err
	}
	r, _ := A.Dims()
	if r == 0 {
		return nil, errors.NewModelError("LeastSquares.Predict", "empty data", errors.ErrEmptyData)
	}

	preds := mat.NewVecDense(r, nil)
	preds.MulVec(A, ls.coef)
	return preds, nil
}

// Coefficients returns a copy of the solution vector, one entry per column of A.
func (ls *LeastSquares) Coefficients() []float64 {
	if ls.coef == nil {
		return nil
	}
	return mat.Col(nil, 0, ls.coef)
}

// Lambda returns the regularization strength.
func (ls *LeastSquares) Lambda() float64 {
	return ls.lambda
}

// IsFitted はモデルが学習済みかどうかを返す
func (ls *LeastSquares) IsFitted() bool {
	return ls.state.IsFitted()
}
