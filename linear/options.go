package linear

// SGDOption configures an SGDRegressor.
type SGDOption func(*SGDRegressor)

// WithLearningRate sets the step size applied to every per-row update.
func WithLearningRate(lr float64) SGDOption {
	return func(s *SGDRegressor) {
		s.learningRate = lr
	}
}

// WithEpochs sets the number of full passes over the training rows.
func WithEpochs(n int) SGDOption {
	return func(s *SGDRegressor) {
		s.epochs = n
	}
}

// LeastSquaresOption configures a LeastSquares estimator.
type LeastSquaresOption func(*LeastSquares)

// WithLambda sets the Tikhonov regularization strength. Zero gives ordinary
// least squares.
func WithLambda(lambda float64) LeastSquaresOption {
	return func(ls *LeastSquares) {
		ls.lambda = lambda
	}
}
