// Package polyreg selects the degree of a one-dimensional polynomial
// regression model.
//
// For every degree in a range, the training feature is expanded into the
// basis [1, x, ..., x^d] and three estimators are scored by RMSE:
//
//   - online stochastic gradient descent, scored by k-fold cross-validation
//   - ordinary least squares via the normal equations, on the full training set
//   - ridge least squares (λI + AᵀA), on the full training set
//
// The degree with the lowest least-squares RMSE is then used to predict the
// test set.
//
// # Packages
//
//   - dataset: row-oriented numeric data, CSV loading and prediction output
//   - preprocessing: MinMaxScaler and polynomial basis expansion
//   - linear: SGDRegressor and LeastSquares estimators
//   - metrics: MSE, RMSE, MAE and R²
//   - model_selection: KFold and CrossValidate
//   - sweep: the degree sweep and best-degree selection
//   - report: console summary and RMSE plot
//   - pkg/errors, pkg/log: structured errors and logging
//
// # Quick Start
//
//	train, _ := dataset.LoadCSVFile("train.csv")
//	test, _ := dataset.LoadCSVFile("test.csv")
//
//	scaler := preprocessing.NewMinMaxScaler()
//	_ = scaler.FitTransform(train)
//	_ = scaler.Transform(test)
//
//	s, _ := sweep.New(sweep.WithDegrees(1, 24))
//	res, err := s.Run(ctx, train)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	preds, _ := res.PredictTest(test)
//	_ = dataset.WritePredictionsFile("out.csv", preds)
//
// The cmd/polyreg command wires these steps to flags.
package polyreg
