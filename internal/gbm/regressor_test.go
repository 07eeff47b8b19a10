package gbm

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
)

func synthetic(n int, seed int64) ([][]float64, []float64) {
	rnd := rand.New(rand.NewSource(seed))
	X := make([][]float64, n)
	y := make([]float64, n)
	for i := range X {
		a := rnd.Float64() * 10
		b := float64(rnd.Intn(2))
		X[i] = []float64{a, b, rnd.Float64()}
		y[i] = 3*a + 5*b + rnd.NormFloat64()*0.1
	}
	return X, y
}

func mse(pred, y []float64) float64 {
	var s float64
	for i := range y {
		d := pred[i] - y[i]
		s += d * d
	}
	return s / float64(len(y))
}

func TestFitReducesError(t *testing.T) {
	X, y := synthetic(300, 1)
	var mean float64
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))
	baseline := make([]float64, len(y))
	for i := range baseline {
		baseline[i] = mean
	}

	r := New(WithNEstimators(50))
	if err := r.Fit(X, y); err != nil {
		t.Fatalf("fit: %v", err)
	}
	pred, err := r.Predict(X)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if got, base := mse(pred, y), mse(baseline, y); got > base/20 {
		t.Fatalf("training mse %v not well below baseline %v", got, base)
	}
	if len(r.Trees) != 50 {
		t.Fatalf("expected 50 trees, got %d", len(r.Trees))
	}
	if math.Abs(r.BaseScore-mean) > 1e-9 {
		t.Fatalf("base score %v want %v", r.BaseScore, mean)
	}
}

func TestMaxDepthRespected(t *testing.T) {
	X, y := synthetic(200, 2)
	r := New(WithNEstimators(5), WithMaxDepth(2))
	if err := r.Fit(X, y); err != nil {
		t.Fatalf("fit: %v", err)
	}
	for i, tr := range r.Trees {
		if d := tr.Depth(); d > 2 {
			t.Fatalf("tree %d depth %d > 2", i, d)
		}
	}
}

func TestFitDeterministic(t *testing.T) {
	X, y := synthetic(700, 3) // large enough to take the concurrent split path
	a, b := New(WithNEstimators(10)), New(WithNEstimators(10))
	if err := a.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	if err := b.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	pa, _ := a.Predict(X)
	pb, _ := b.Predict(X)
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("row %d: %v != %v", i, pa[i], pb[i])
		}
	}
}

func TestConstantTargetYieldsBaseScore(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}, {4}}
	y := []float64{7, 7, 7, 7}
	r := New(WithNEstimators(3))
	if err := r.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	pred, _ := r.Predict(X)
	for i, p := range pred {
		if p != 7 {
			t.Fatalf("row %d: got %v want 7", i, p)
		}
	}
	if imp := r.Importance(); imp[0] != 0 {
		t.Fatalf("no split expected, importance %v", imp)
	}
}

func TestMissingValuesRouted(t *testing.T) {
	nan := math.NaN()
	var X [][]float64
	var y []float64
	for i := 0; i < 20; i++ {
		X = append(X, []float64{float64(i % 5)})
		y = append(y, 1)
		X = append(X, []float64{nan})
		y = append(y, 10)
	}
	r := New(WithNEstimators(30), WithLambda(0))
	if err := r.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	pred, err := r.Predict([][]float64{{2}, {nan}})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(pred[0]-1) > 0.05 || math.Abs(pred[1]-10) > 0.05 {
		t.Fatalf("unexpected predictions %v", pred)
	}
}

func TestFitErrors(t *testing.T) {
	cases := map[string]struct {
		r *Regressor
		X [][]float64
		y []float64
	}{
		"empty":          {New(), nil, nil},
		"length":         {New(), [][]float64{{1}, {2}}, []float64{1}},
		"ragged":         {New(), [][]float64{{1, 2}, {3}}, []float64{1, 2}},
		"no features":    {New(), [][]float64{{}, {}}, []float64{1, 2}},
		"nan target":     {New(), [][]float64{{1}, {2}}, []float64{1, math.NaN()}},
		"zero rounds":    {New(WithNEstimators(0)), [][]float64{{1}, {2}}, []float64{1, 2}},
		"bad eta":        {New(WithLearningRate(0)), [][]float64{{1}, {2}}, []float64{1, 2}},
		"negative gamma": {New(WithGamma(-1)), [][]float64{{1}, {2}}, []float64{1, 2}},
	}
	for name, tc := range cases {
		if err := tc.r.Fit(tc.X, tc.y); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestFitContextCanceled(t *testing.T) {
	X, y := synthetic(50, 4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := New()
	if err := r.FitContext(ctx, X, y); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if r.Fitted() {
		t.Fatalf("canceled fit must not leave a model behind")
	}
}

func TestPredictErrors(t *testing.T) {
	if _, err := New().Predict([][]float64{{1}}); !errors.Is(err, ErrNotFitted) {
		t.Fatalf("expected ErrNotFitted, got %v", err)
	}
	X, y := synthetic(30, 5)
	r := New(WithNEstimators(2))
	if err := r.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	for _, X := range [][][]float64{{{1, 2}}, {{1}}, {{}}, {{1, 2, 3, 4, 5, 6}}, {{1, 2, 3, 4, 5}, {1}}} {
		if _, err := r.Predict(X); err == nil {
			t.Fatalf("expected width error for %v", X)
		}
	}
}

func TestOptions(t *testing.T) {
	r := New(WithMaxDepth(3), WithLearningRate(0.1), WithMinChildWeight(2), WithGamma(0.5))
	p := r.Params
	if p.MaxDepth != 3 || p.LearningRate != 0.1 || p.MinChildWeight != 2 || p.Gamma != 0.5 || p.NEstimators != 100 {
		t.Fatalf("unexpected params %+v", p)
	}
	m := Params{NEstimators: 10, MaxDepth: 0, LearningRate: 0.3}
	if New(WithParams(m)).Params != m {
		t.Fatalf("WithParams not applied")
	}
}

func TestImportanceFavorsSignal(t *testing.T) {
	X, y := synthetic(300, 6)
	r := New(WithNEstimators(20))
	if err := r.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	imp := r.Importance()
	if len(imp) != 3 {
		t.Fatalf("expected 3 importances, got %d", len(imp))
	}
	if imp[0] <= imp[2] || imp[1] <= imp[2] {
		t.Fatalf("noise feature ranked above signal: %v", imp)
	}
}
