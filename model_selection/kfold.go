// Package model_selection provides k-fold splitting and cross-validated scoring.
package model_selection

import (
	"math/rand/v2"

	"github.com/YuminosukeSato/polyreg/dataset"
	"github.com/YuminosukeSato/polyreg/pkg/errors"
)

// KFold partitions rows into NSplits folds of floor(n/NSplits) rows each.
//
// Each fold is filled by drawing uniformly from the rows not yet assigned, so
// the n mod NSplits rows left over at the end are silently dropped.
type KFold struct {
	NSplits int
}

// NewKFold creates a new k-fold splitter
func NewKFold(nSplits int) *KFold {
	return &KFold{NSplits: nSplits}
}

// GetNSplits returns the number of splits
func (kf *KFold) GetNSplits() int {
	return kf.NSplits
}

// SplitIndices returns NSplits disjoint lists of row indices in [0, n).
func (kf *KFold) SplitIndices(n int, rng *rand.Rand) ([][]int, error) {
	if kf.NSplits < 2 {
		return nil, errors.NewValidationError("n_splits", "must be at least 2", kf.NSplits)
	}
	if kf.NSplits > n {
		return nil, errors.NewValidationError("n_splits", "cannot exceed the number of samples", kf.NSplits)
	}
	if rng == nil {
		return nil, errors.NewValueError("KFold.Split", "random source is nil")
	}

	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}

	foldSize := n / kf.NSplits
	folds := make([][]int, kf.NSplits)
	for f := range folds {
		fold := make([]int, 0, foldSize)
		for len(fold) < foldSize {
			// pop without replacement from the shrinking pool
			idx := rng.IntN(len(remaining))
			fold = append(fold, remaining[idx])
			remaining = append(remaining[:idx], remaining[idx+1:]...)
		}
		folds[f] = fold
	}
	return folds, nil
}

// Split returns the folds as datasets. Rows are shared with ds, not copied.
func (kf *KFold) Split(ds dataset.Dataset, rng *rand.Rand) ([]dataset.Dataset, error) {
	indices, err := kf.SplitIndices(len(ds), rng)
	if err != nil {
		return nil, err
	}
	folds := make([]dataset.Dataset, len(indices))
	for f, idx := range indices {
		fold := make(dataset.Dataset, len(idx))
		for i, row := range idx {
			fold[i] = ds[row]
		}
		folds[f] = fold
	}
	return folds, nil
}
