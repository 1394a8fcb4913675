package preprocessing

import (
	"math"

	"github.com/YuminosukeSato/polyreg/core/parallel"
	"github.com/YuminosukeSato/polyreg/dataset"
	"github.com/YuminosukeSato/polyreg/pkg/errors"
)

// 並列処理の閾値（この値以下の行数では逐次処理を使用）
const parallelThreshold = 1000

// Basis expands a training dataset into polynomial features of the first
// field: each row becomes [x^0, x^1, ..., x^degree, y] where y is the row's
// last field. x^0 is 1 even for x = 0. The input is not modified.
func Basis(ds dataset.Dataset, degree int) (dataset.Dataset, error) {
	return expand("Basis", ds, degree, true)
}

// BasisFeatures is Basis for target-less rows: [x^0, ..., x^degree].
func BasisFeatures(ds dataset.Dataset, degree int) (dataset.Dataset, error) {
	return expand("BasisFeatures", ds, degree, false)
}

func expand(op string, ds dataset.Dataset, degree int, withTarget bool) (dataset.Dataset, error) {
	if degree < 0 {
		return nil, errors.NewValidationError("degree", "must be non-negative", degree)
	}
	minWidth := 1
	if withTarget {
		minWidth = 2
	}
	for _, row := range ds {
		if len(row) < minWidth {
			return nil, errors.NewDimensionError(op, minWidth, len(row), 1)
		}
	}

	width := degree + 1
	if withTarget {
		width++
	}

	out := make(dataset.Dataset, len(ds))
	parallel.ParallelizeWithThreshold(len(ds), parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			row := ds[i]
			expanded := make([]float64, width)
			for p := 0; p <= degree; p++ {
				expanded[p] = math.Pow(row[0], float64(p))
			}
			if withTarget {
				expanded[width-1] = row[len(row)-1]
			}
			out[i] = expanded
		}
	})
	return out, nil
}
