// Package report renders sweep results for humans: a console summary and an
// RMSE-versus-degree plot.
package report

import (
	"fmt"
	"io"

	"github.com/YuminosukeSato/polyreg/sweep"
)

// printer keeps the first write error so callers can check once at the end.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// PrintDegree writes the diagnostic block of one degree.
func PrintDegree(w io.Writer, d sweep.DegreeResult, lambda float64) error {
	p := &printer{w: w}
	p.printf("---------------- Degree: %2d\n", d.Degree)
	p.printf("Scores: %.6g\n", d.Scores)
	p.printf("Mean RMSE (SGD, %d-fold CV): %.3f\n", len(d.Scores), d.SGD.RMSE)
	p.printf("RMSE (least squares): %.3f\n", d.LeastSquares.RMSE)
	p.printf("RMSE (ridge, lambda=%g): %.3f\n", lambda, d.Ridge.RMSE)
	return p.err
}

// PrintSummary writes every degree block followed by the best degree, RMSE and
// coefficients of each method, and the number of test predictions.
func PrintSummary(w io.Writer, res *sweep.Results, nPredictions int) error {
	for _, d := range res.Degrees {
		if err := PrintDegree(w, d, res.Lambda); err != nil {
			return err
		}
	}

	p := &printer{w: w}
	p.printf("*********** RESULTS ***************\n")
	printBest(p, "SGD (cross-validated)", res.BestSGD)
	printBest(p, "Least squares", res.BestLeastSquares)
	printBest(p, fmt.Sprintf("Ridge (lambda=%g)", res.Lambda), res.BestRidge)
	p.printf("Predictions written: %d\n", nPredictions)
	return p.err
}

func printBest(p *printer, method string, b sweep.Best) {
	if !b.Found() {
		p.printf("%s: no degree with a finite RMSE\n", method)
		return
	}
	p.printf("%s: best degree %2d, RMSE %.3f\n", method, b.Degree, b.RMSE)
	p.printf("  coefficients: %.6g\n", b.Coef)
}
