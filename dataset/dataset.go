// Package dataset holds tabular numeric data and its CSV representation.
package dataset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/polyreg/pkg/errors"
)

// Dataset is an ordered list of rows of equal length. For training data the
// last field of every row is the target.
type Dataset [][]float64

// Clone returns a deep copy of the dataset.
func (d Dataset) Clone() Dataset {
	out := make(Dataset, len(d))
	for i, row := range d {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Width returns the number of fields per row, or 0 for an empty dataset.
func (d Dataset) Width() int {
	if len(d) == 0 {
		return 0
	}
	return len(d[0])
}

// NumFeatures returns the number of feature columns of a training dataset,
// that is every field except the trailing target.
func (d Dataset) NumFeatures() int {
	if d.Width() == 0 {
		return 0
	}
	return d.Width() - 1
}

// Targets returns the last field of every row.
func (d Dataset) Targets() []float64 {
	ys := make([]float64, len(d))
	for i, row := range d {
		ys[i] = row[len(row)-1]
	}
	return ys
}

// XY splits a training dataset into its feature matrix and target vector.
func (d Dataset) XY() (*mat.Dense, *mat.VecDense, error) {
	if err := d.validate("Dataset.XY", 2); err != nil {
		return nil, nil, err
	}
	n, c := len(d), d.NumFeatures()
	X := mat.NewDense(n, c, nil)
	y := mat.NewVecDense(n, nil)
	for i, row := range d {
		X.SetRow(i, row[:c])
		y.SetVec(i, row[c])
	}
	return X, y, nil
}

// Matrix returns every field of every row as a dense matrix. It is used for
// target-less rows such as the test set.
func (d Dataset) Matrix() (*mat.Dense, error) {
	if err := d.validate("Dataset.Matrix", 1); err != nil {
		return nil, err
	}
	X := mat.NewDense(len(d), d.Width(), nil)
	for i, row := range d {
		X.SetRow(i, row)
	}
	return X, nil
}

func (d Dataset) validate(op string, minWidth int) error {
	if len(d) == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	width := d.Width()
	if width < minWidth {
		return errors.NewValueError(op, "rows have too few fields")
	}
	for _, row := range d {
		if len(row) != width {
			return errors.NewDimensionError(op, width, len(row), 1)
		}
	}
	return nil
}
