// Package evaluate scores regression predictions against held-out targets.
package evaluate

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RMSE is the root mean squared error. Slices must be non-empty and of equal
// length; gonum panics otherwise.
func RMSE(yTrue, yPred []float64) float64 {
	return floats.Distance(yPred, yTrue, 2) / math.Sqrt(float64(len(yTrue)))
}

// R2 is the coefficient of determination. A constant target scores 1 when
// the predictions are exact and 0 otherwise.
func R2(yTrue, yPred []float64) float64 {
	mean := stat.Mean(yTrue, nil)
	var tot float64
	for _, v := range yTrue {
		d := v - mean
		tot += d * d
	}
	if tot == 0 {
		if floats.Equal(yTrue, yPred) {
			return 1
		}
		return 0
	}
	return stat.RSquaredFrom(yPred, yTrue, nil)
}

// Report holds the held-out scores of one fit.
type Report struct {
	LogRMSE    float64 `json:"log_rmse" yaml:"log_rmse"`
	LogR2      float64 `json:"log_r2" yaml:"log_r2"`
	DollarRMSE float64 `json:"dollar_rmse" yaml:"dollar_rmse"`
	NTrain     int     `json:"n_train" yaml:"n_train"`
	NTest      int     `json:"n_test" yaml:"n_test"`
}

// Score builds a Report from log1p-space targets and predictions.
func Score(yTrue, yPred []float64, nTrain int) (Report, error) {
	if err := checkPair(yTrue, yPred); err != nil {
		return Report{}, err
	}
	dollarsTrue := make([]float64, len(yTrue))
	dollarsPred := make([]float64, len(yPred))
	for i := range yTrue {
		dollarsTrue[i] = math.Expm1(yTrue[i])
		dollarsPred[i] = math.Expm1(yPred[i])
	}
	return Report{
		LogRMSE:    RMSE(yTrue, yPred),
		LogR2:      R2(yTrue, yPred),
		DollarRMSE: RMSE(dollarsTrue, dollarsPred),
		NTrain:     nTrain,
		NTest:      len(yTrue),
	}, nil
}

func checkPair(yTrue, yPred []float64) error {
	if len(yTrue) == 0 {
		return fmt.Errorf("evaluate: no held-out rows")
	}
	if len(yTrue) != len(yPred) {
		return fmt.Errorf("evaluate: %d targets but %d predictions", len(yTrue), len(yPred))
	}
	return nil
}

// Print writes the two metric lines. Both are in log1p space, which the
// labels make explicit.
func (r Report) Print(w io.Writer) error {
	_, err := fmt.Fprintf(w, "RMSE (log1p space): %.6f\nR² Score (log1p space): %.6f\n", r.LogRMSE, r.LogR2)
	return err
}
