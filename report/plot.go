package report

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/polyreg/pkg/errors"
	"github.com/YuminosukeSato/polyreg/sweep"
)

// PlotRMSE saves an RMSE-versus-degree chart of the three methods to path.
// The image format follows the file extension (png, svg, pdf, ...).
// Non-finite points are left out, and a method with no finite point gets no line.
func PlotRMSE(res *sweep.Results, path string) error {
	if res == nil || len(res.Degrees) == 0 {
		return errors.NewValueError("PlotRMSE", "no sweep results to plot")
	}

	p := plot.New()
	p.Title.Text = "RMSE by polynomial degree"
	p.X.Label.Text = "Degree"
	p.Y.Label.Text = "RMSE"
	p.Legend.Top = true

	series := []struct {
		name string
		pick func(sweep.DegreeResult) float64
	}{
		{"SGD (CV mean)", func(d sweep.DegreeResult) float64 { return d.SGD.RMSE }},
		{"Least squares", func(d sweep.DegreeResult) float64 { return d.LeastSquares.RMSE }},
		{"Ridge", func(d sweep.DegreeResult) float64 { return d.Ridge.RMSE }},
	}

	var lines []interface{}
	for _, s := range series {
		pts := finitePoints(res.Degrees, s.pick)
		if len(pts) == 0 {
			continue
		}
		lines = append(lines, s.name, pts)
	}
	if len(lines) > 0 {
		if err := plotutil.AddLinePoints(p, lines...); err != nil {
			return errors.Wrap(err, "add rmse lines")
		}
	}

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "save plot %s", path)
	}
	return nil
}

func finitePoints(degrees []sweep.DegreeResult, pick func(sweep.DegreeResult) float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(degrees))
	for _, d := range degrees {
		y := pick(d)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(d.Degree), Y: y})
	}
	return pts
}
