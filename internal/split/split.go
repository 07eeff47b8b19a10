// Package split partitions rows into train and held-out sets.
package split

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Defaults used by the fit job.
const (
	DefaultTestRatio = 0.25
	DefaultSeed      = 42
)

// Indices holds row positions for each partition.
type Indices struct {
	Train []int
	Test  []int
}

// TrainTest shuffles 0..n-1 with a seeded source and takes the first
// ceil(n*testRatio) positions as the test set. The result depends only on
// (n, testRatio, seed).
func TrainTest(n int, testRatio float64, seed int64) (Indices, error) {
	if n < 2 {
		return Indices{}, fmt.Errorf("split: need at least 2 rows, have %d", n)
	}
	if !(testRatio > 0 && testRatio < 1) {
		return Indices{}, fmt.Errorf("split: test ratio %v outside (0,1)", testRatio)
	}
	nTest := int(math.Ceil(testRatio * float64(n)))
	if nTest >= n {
		return Indices{}, errors.New("split: test ratio leaves no training rows")
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return Indices{
		Test:  append([]int(nil), perm[:nTest]...),
		Train: append([]int(nil), perm[nTest:]...),
	}, nil
}

// Take gathers the rows of X and y at idx. Rows are shared, not copied.
func Take(X [][]float64, y []float64, idx []int) ([][]float64, []float64) {
	xs := make([][]float64, len(idx))
	ys := make([]float64, len(idx))
	for i, k := range idx {
		xs[i] = X[k]
		ys[i] = y[k]
	}
	return xs, ys
}
