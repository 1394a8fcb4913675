package sweep

import (
	"github.com/YuminosukeSato/polyreg/linear"
	"github.com/YuminosukeSato/polyreg/pkg/log"
)

// 既定値は元の実験設定と同じ
const (
	DefaultMinDegree = 1
	DefaultMaxDegree = 24
	DefaultFolds     = 5
	DefaultLambda    = 1e-9
	DefaultSeed      = 1
)

// Option configures a Sweeper.
type Option func(*Sweeper)

// WithDegrees sets the inclusive degree range to sweep.
func WithDegrees(min, max int) Option {
	return func(s *Sweeper) {
		s.minDegree = min
		s.maxDegree = max
	}
}

// WithFolds sets the number of cross-validation folds for the SGD path.
func WithFolds(k int) Option {
	return func(s *Sweeper) {
		s.folds = k
	}
}

// WithLearningRate sets the SGD step size.
func WithLearningRate(lr float64) Option {
	return func(s *Sweeper) {
		s.learningRate = lr
	}
}

// WithEpochs sets the number of SGD epochs.
func WithEpochs(n int) Option {
	return func(s *Sweeper) {
		s.epochs = n
	}
}

// WithLambda sets the regularization strength of the ridge fit.
func WithLambda(lambda float64) Option {
	return func(s *Sweeper) {
		s.lambda = lambda
	}
}

// WithSeed sets the seed from which every degree derives its fold RNG.
func WithSeed(seed uint64) Option {
	return func(s *Sweeper) {
		s.seed = seed
	}
}

// WithWorkers sets how many degrees are evaluated concurrently.
func WithWorkers(n int) Option {
	return func(s *Sweeper) {
		s.workers = n
	}
}

// WithLogger sets the logger. The default is log.GetLogger() at Run time.
func WithLogger(l log.Logger) Option {
	return func(s *Sweeper) {
		s.logger = l
	}
}

func defaults() *Sweeper {
	return &Sweeper{
		minDegree:    DefaultMinDegree,
		maxDegree:    DefaultMaxDegree,
		folds:        DefaultFolds,
		learningRate: linear.DefaultLearningRate,
		epochs:       linear.DefaultEpochs,
		lambda:       DefaultLambda,
		seed:         DefaultSeed,
		workers:      1,
	}
}
