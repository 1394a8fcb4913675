package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる。y は列ベクトル。
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データの各行に対する予測値を返す
	Predict(X mat.Matrix) (*mat.VecDense, error)
}

// Regressor is a linear estimator whose learned coefficients can be read back.
type Regressor interface {
	Fitter
	Predictor
	// Coefficients returns a copy of the learned coefficient vector.
	Coefficients() []float64
}

// Factory builds a fresh unfitted Regressor. Cross-validation calls it once per fold.
type Factory func() Regressor
