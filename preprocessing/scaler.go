// Package preprocessing provides feature scaling and polynomial basis expansion.
package preprocessing

import (
	"fmt"

	"github.com/YuminosukeSato/polyreg/core/model"
	"github.com/YuminosukeSato/polyreg/dataset"
	"github.com/YuminosukeSato/polyreg/pkg/errors"
)

// MinMaxScaler は各特徴量を学習データの最小値・最大値で [0, 1] に変換する。
//
// 学習時の統計量はテストデータの変換にもそのまま使われ、再計算されない。
// 定数列（min == max）は保護しないため、変換結果は NaN または Inf になる。
type MinMaxScaler struct {
	state *model.StateManager

	// DataMin は学習データの各特徴量の最小値
	DataMin []float64

	// DataMax は学習データの各特徴量の最大値
	DataMax []float64

	// NFeatures は学習した特徴量の数（目的変数の列を除く）
	NFeatures int
}

// NewMinMaxScaler は新しいMinMaxScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewMinMaxScaler()
//	if err := scaler.FitTransform(train); err != nil {
//	    return err
//	}
//	err := scaler.Transform(test)
func NewMinMaxScaler() *MinMaxScaler {
	return &MinMaxScaler{state: model.NewStateManager()}
}

// Fit は学習データの各特徴量列（最後の列以外）の最小値と最大値を記録する
func (s *MinMaxScaler) Fit(ds dataset.Dataset) error {
	if len(ds) == 0 {
		return errors.NewModelError("MinMaxScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	nFeatures := ds.NumFeatures()
	if nFeatures == 0 {
		return errors.NewValueError("MinMaxScaler.Fit", "dataset has no feature columns")
	}
	for _, row := range ds {
		if len(row) != nFeatures+1 {
			return errors.NewDimensionError("MinMaxScaler.Fit", nFeatures+1, len(row), 1)
		}
	}

	dataMin := append([]float64(nil), ds[0][:nFeatures]...)
	dataMax := append([]float64(nil), ds[0][:nFeatures]...)
	for _, row := range ds[1:] {
		for j := 0; j < nFeatures; j++ {
			v := row[j]
			if v < dataMin[j] {
				dataMin[j] = v
			}
			if v > dataMax[j] {
				dataMax[j] = v
			}
		}
	}

	s.DataMin = dataMin
	s.DataMax = dataMax
	s.NFeatures = nFeatures
	s.state.SetFitted(nFeatures, len(ds))
	return nil
}

// Transform は先頭 NFeatures 列をその場で (v - min) / (max - min) に置き換える。
// 残りの列（目的変数）は変更しないため、目的変数のないテストデータにも使える。
func (s *MinMaxScaler) Transform(ds dataset.Dataset) error {
	if err := s.state.RequireFitted("MinMaxScaler", "Transform"); err != nil {
		return err
	}
	for _, row := range ds {
		if len(row) < s.NFeatures {
			return errors.NewDimensionError("MinMaxScaler.Transform", s.NFeatures, len(row), 1)
		}
	}

	for _, row := range ds {
		for j := 0; j < s.NFeatures; j++ {
			row[j] = (row[j] - s.DataMin[j]) / (s.DataMax[j] - s.DataMin[j])
		}
	}
	return nil
}

// FitTransform はFitとTransformを同じデータに対して実行する
func (s *MinMaxScaler) FitTransform(ds dataset.Dataset) error {
	if err := s.Fit(ds); err != nil {
		return err
	}
	return s.Transform(ds)
}

// IsFitted はスケーラーが学習済みかどうかを返す
func (s *MinMaxScaler) IsFitted() bool {
	return s.state.IsFitted()
}

// String はスケーラーの文字列表現を返す
func (s *MinMaxScaler) String() string {
	if !s.state.IsFitted() {
		return "MinMaxScaler(fitted=false)"
	}
	return fmt.Sprintf("MinMaxScaler(n_features=%d, data_min=%v, data_max=%v)", s.NFeatures, s.DataMin, s.DataMax)
}
