// Package predictor is the HTTP client of the prediction endpoint. Predict
// performs one POST per call and classifies failures as PayloadError,
// NetworkError or ResponseShapeError.
package predictor
