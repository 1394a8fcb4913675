// Package log defines standard attribute keys for regression runs.
//
// Keys follow a hierarchical naming convention (e.g. "model.name",
// "data.samples") so that JSON log lines can be filtered per concern.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the estimator type.
	// Examples: "SGDRegressor", "LeastSquares", "MinMaxScaler"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "cross_validate", "sweep"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "linear", "preprocessing", "model_selection", "sweep"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the run.
	// Examples: "training", "validation", "inference"
	PhaseKey = "ml.phase"
)

// Data Shape
const (
	// SamplesKey indicates the number of rows being processed.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of feature columns.
	FeaturesKey = "data.features"

	// DroppedKey indicates how many rows a fold split left out.
	DroppedKey = "data.dropped"

	// PathKey records an input or output file path.
	PathKey = "data.path"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// RMSEKey records a root mean squared error.
	RMSEKey = "metrics.rmse"

	// MAEKey records a mean absolute error.
	MAEKey = "metrics.mae"

	// R2ScoreKey records R² coefficient of determination.
	R2ScoreKey = "metrics.r2_score"

	// EpochKey records the number of SGD epochs.
	EpochKey = "training.epochs"
)

// Sweep and Cross-Validation Context
const (
	// DegreeKey records the polynomial basis degree.
	DegreeKey = "sweep.degree"

	// MethodKey names the estimation method of a best-degree record.
	// Values: "sgd_cv", "least_squares", "ridge"
	MethodKey = "sweep.method"

	// WorkersKey records the number of sweep workers.
	WorkersKey = "sweep.workers"

	// FoldKey records the cross-validation fold index (0-based).
	FoldKey = "cv.fold"

	// FoldsKey records the number of cross-validation folds.
	FoldsKey = "cv.folds"

	// PredsKey indicates the number of predictions made.
	PredsKey = "preds.count"
)

// Error Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// SuggestionKey provides a hint for resolving an issue.
	SuggestionKey = "error.suggestion"
)

// Hyperparameters and Configuration
const (
	// LearningRateKey records the SGD learning rate.
	LearningRateKey = "hyperparams.learning_rate"

	// RegularizationKey records the ridge regularization strength λ.
	RegularizationKey = "hyperparams.regularization"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Standard attribute values.
const (
	OperationFit           = "fit"
	OperationPredict       = "predict"
	OperationTransform     = "transform"
	OperationCrossValidate = "cross_validate"
	OperationSweep         = "sweep"

	PhaseTraining   = "training"
	PhaseValidation = "validation"
	PhaseInference  = "inference"

	ErrorSingularMatrix = "SINGULAR_MATRIX"
	ErrorParse          = "PARSE_ERROR"
	ErrorInvalidInput   = "INVALID_INPUT"
)
