// Package gbm implements a gradient-boosted regression tree ensemble with
// squared-error loss, second-order leaf weights and learned missing-value
// directions.
package gbm

import (
	"context"
	"errors"
	"fmt"
	"math"
)

var (
	ErrNotFitted = errors.New("gbm: model not fitted")
	ErrEmpty     = errors.New("gbm: empty training set")
)

// Regressor is a boosted ensemble. The exported fields are the complete model
// state; they are what gets serialized.
type Regressor struct {
	Params    Params
	BaseScore float64
	NFeatures int
	Trees     []Tree
}

// New returns an unfitted regressor with DefaultParams and opts applied.
func New(opts ...Option) *Regressor {
	r := &Regressor{Params: DefaultParams()}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (p Params) validate() error {
	switch {
	case p.NEstimators < 1:
		return fmt.Errorf("gbm: n_estimators must be >= 1, got %d", p.NEstimators)
	case p.MaxDepth < 0:
		return fmt.Errorf("gbm: max_depth must be >= 0, got %d", p.MaxDepth)
	case !(p.LearningRate > 0):
		return fmt.Errorf("gbm: learning_rate must be > 0, got %v", p.LearningRate)
	case p.Lambda < 0:
		return fmt.Errorf("gbm: lambda must be >= 0, got %v", p.Lambda)
	case p.Gamma < 0:
		return fmt.Errorf("gbm: gamma must be >= 0, got %v", p.Gamma)
	case p.MinChildWeight < 0:
		return fmt.Errorf("gbm: min_child_weight must be >= 0, got %v", p.MinChildWeight)
	}
	return nil
}

// Fit trains on X (n rows of equal width) and y. Missing feature values are
// NaN. Any previous fit is discarded.
func (r *Regressor) Fit(X [][]float64, y []float64) error {
	return r.FitContext(context.Background(), X, y)
}

// FitContext is Fit with cancellation checked between boosting rounds.
func (r *Regressor) FitContext(ctx context.Context, X [][]float64, y []float64) error {
	if err := r.Params.validate(); err != nil {
		return err
	}
	n := len(X)
	if n == 0 {
		return ErrEmpty
	}
	if len(y) != n {
		return fmt.Errorf("gbm: X has %d rows but y has %d", n, len(y))
	}
	p := len(X[0])
	if p == 0 {
		return errors.New("gbm: rows have no features")
	}
	for i, row := range X {
		if len(row) != p {
			return fmt.Errorf("gbm: row %d has %d features, want %d", i, len(row), p)
		}
	}
	var sum float64
	for i, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("gbm: target %d is not finite", i)
		}
		sum += v
	}

	base := sum / float64(n)
	pred := make([]float64, n)
	for i := range pred {
		pred[i] = base
	}
	g := make([]float64, n)
	h := make([]float64, n)
	for i := range h {
		h[i] = 1
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	b := &builder{X: X, g: g, h: h, params: r.Params, nFeat: p}
	trees := make([]Tree, 0, r.Params.NEstimators)
	for round := 0; round < r.Params.NEstimators; round++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := range g {
			g[i] = pred[i] - y[i]
		}
		t := b.build(idx)
		for i, row := range X {
			pred[i] += t.predict(row)
		}
		trees = append(trees, t)
	}

	r.BaseScore = base
	r.NFeatures = p
	r.Trees = trees
	return nil
}

// Fitted reports whether the regressor holds a trained ensemble.
func (r *Regressor) Fitted() bool { return r.NFeatures > 0 && len(r.Trees) > 0 }

// predictRow scores one row already checked against NFeatures.
func (r *Regressor) predictRow(row []float64) float64 {
	out := r.BaseScore
	for _, t := range r.Trees {
		out += t.predict(row)
	}
	return out
}

// Predict scores every row of X.
func (r *Regressor) Predict(X [][]float64) ([]float64, error) {
	if !r.Fitted() {
		return nil, ErrNotFitted
	}
	out := make([]float64, len(X))
	for i, row := range X {
		if len(row) != r.NFeatures {
			return nil, fmt.Errorf("gbm: row %d has %d features, want %d", i, len(row), r.NFeatures)
		}
		out[i] = r.predictRow(row)
	}
	return out, nil
}

// Importance returns the total split gain attributed to each feature.
func (r *Regressor) Importance() []float64 {
	out := make([]float64, r.NFeatures)
	for _, t := range r.Trees {
		for _, n := range t.Nodes {
			if !n.Leaf && int(n.Feature) < len(out) {
				out[n.Feature] += n.Gain
			}
		}
	}
	return out
}
