package errors

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		kind    string
		err     error
		wantMsg string
	}{
		{
			name:    "with original error",
			op:      "LeastSquares.Fit",
			kind:    "singular system",
			err:     ErrSingularMatrix,
			wantMsg: "polyreg: LeastSquares.Fit: singular system: singular matrix",
		},
		{
			name:    "without original error",
			op:      "SGDRegressor.Fit",
			kind:    "empty data",
			err:     nil,
			wantMsg: "polyreg: SGDRegressor.Fit: empty data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			assert.Equal(t, tt.wantMsg, err.Error())

			// スタックトレースの存在確認
			formatted := fmt.Sprintf("%+v", err)
			assert.Contains(t, formatted, "errors_test.go")

			var modelErr *ModelError
			assert.True(t, As(err, &modelErr))
		})
	}
}

func TestModelErrorUnwrapsSentinel(t *testing.T) {
	err := NewModelError("LeastSquares.Fit", "singular system", ErrSingularMatrix)
	wrapped := Wrapf(err, "degree %d", 7)

	assert.True(t, Is(wrapped, ErrSingularMatrix))
	assert.False(t, Is(wrapped, ErrEmptyData))
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("RMSE", 10, 9, 0)

	want := "polyreg: RMSE: dimension mismatch on axis 0 (rows). Expected 10, got 9"
	assert.Equal(t, want, err.Error())

	var dimErr *DimensionError
	require.True(t, As(err, &dimErr))
	assert.Equal(t, 10, dimErr.Expected)
	assert.Equal(t, 9, dimErr.Got)

	err = NewDimensionError("LeastSquares.Predict", 3, 2, 1)
	assert.Contains(t, err.Error(), "(features)")
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("SGDRegressor", "Predict")

	want := "polyreg: SGDRegressor: this model is not fitted yet. Call Fit() before using Predict()"
	assert.Equal(t, want, err.Error())

	var notFittedErr *NotFittedError
	assert.True(t, As(err, &notFittedErr))
}

func TestNewValueError(t *testing.T) {
	err := NewValueError("PredictTest", "no finite least-squares degree")
	assert.Equal(t, "polyreg: PredictTest: no finite least-squares degree", err.Error())

	var valErr *ValueError
	assert.True(t, As(err, &valErr))
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("n_folds", "must be at least 2", 1)
	assert.Equal(t, "polyreg: validation failed for parameter 'n_folds': must be at least 2 (got: 1)", err.Error())

	var valErr *ValidationError
	require.True(t, As(err, &valErr))
	assert.Equal(t, 1, valErr.Value)
}

func TestNewParseError(t *testing.T) {
	_, cause := strconv.ParseFloat("abc", 64)
	err := NewParseError(4, 2, "abc", cause)

	assert.True(t, strings.HasPrefix(err.Error(), `polyreg: parse error at line 4, column 2 ("abc")`))

	var parseErr *ParseError
	require.True(t, As(err, &parseErr))
	assert.Equal(t, 4, parseErr.Line)
	assert.Equal(t, 2, parseErr.Column)

	var numErr *strconv.NumError
	assert.True(t, As(err, &numErr), "cause should stay reachable")
}

func TestConditionWarning(t *testing.T) {
	w := NewConditionWarning("LeastSquares.Fit", 1e18, 0)
	assert.Contains(t, w.Error(), "ill-conditioned")
	assert.Contains(t, w.Error(), "1e+18")
}

func TestWarnRouting(t *testing.T) {
	var handled []error
	SetWarningHandler(func(w error) { handled = append(handled, w) })
	defer SetWarningHandler(func(error) {})

	Warn(NewConditionWarning("op", 1e17, 0))
	require.Len(t, handled, 1)

	var fromZerolog []error
	SetZerologWarnFunc(func(w error) { fromZerolog = append(fromZerolog, w) })
	defer SetZerologWarnFunc(nil)

	Warn(NewConditionWarning("op", 1e17, 0))
	assert.Len(t, handled, 1, "zerolog sink takes precedence")
	assert.Len(t, fromZerolog, 1)
}

func TestCheckNumericalStability(t *testing.T) {
	assert.NoError(t, CheckNumericalStability("sgd_fit", []float64{1, 2, 3}, 0))

	err := CheckNumericalStability("sgd_fit", []float64{1, math.Inf(1), 3}, 50)
	require.Error(t, err)

	var numErr *NumericalInstabilityError
	require.True(t, As(err, &numErr))
	assert.Equal(t, 50, numErr.Iteration)
	assert.Contains(t, err.Error(), "sgd_fit")

	assert.Error(t, CheckScalar("rmse", math.NaN(), 0))
	assert.NoError(t, CheckScalar("rmse", 0.5, 0))
}

func TestWrapAndIs(t *testing.T) {
	wrapped := Wrap(ErrEmptyData, "in SGDRegressor.Fit")

	assert.True(t, Is(wrapped, ErrEmptyData))
	assert.Contains(t, wrapped.Error(), "in SGDRegressor.Fit")
}

func TestErrorChaining(t *testing.T) {
	err1 := fmt.Errorf("base error")
	err2 := Wrap(err1, "wrapped once")
	err3 := NewModelError("Operation", "failed", err2)

	assert.Contains(t, err3.Error(), "base error")
	assert.Contains(t, fmt.Sprintf("%+v", err3), "errors_test.go")
}
