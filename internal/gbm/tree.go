package gbm

import (
	"math"
	"runtime"
	"sort"
	"sync"
)

// Node is one entry of a flattened regression tree. Internal nodes route
// x[Feature] <= Threshold to Left; NaN follows DefaultLeft.
type Node struct {
	Leaf        bool
	Feature     int32
	Threshold   float64
	DefaultLeft bool
	Left        int32
	Right       int32
	Value       float64 // leaf output, already scaled by the learning rate
	Cover       float64 // hessian sum of the rows that reached the node
	Gain        float64
}

// Tree is a single boosting round. Nodes[0] is the root.
type Tree struct {
	Nodes []Node
}

func (t Tree) predict(row []float64) float64 {
	i := int32(0)
	for {
		n := &t.Nodes[i]
		if n.Leaf {
			return n.Value
		}
		v := row[n.Feature]
		switch {
		case math.IsNaN(v):
			if n.DefaultLeft {
				i = n.Left
			} else {
				i = n.Right
			}
		case v <= n.Threshold:
			i = n.Left
		default:
			i = n.Right
		}
	}
}

// Depth returns the number of edges on the longest root-to-leaf path.
func (t Tree) Depth() int {
	if len(t.Nodes) == 0 {
		return 0
	}
	var walk func(i int32) int
	walk = func(i int32) int {
		n := t.Nodes[i]
		if n.Leaf {
			return 0
		}
		return 1 + max(walk(n.Left), walk(n.Right))
	}
	return walk(0)
}

// minSplitGain keeps float noise from producing zero-benefit splits.
const minSplitGain = 1e-6

// parallelRows is the node size above which features are scanned concurrently.
const parallelRows = 512

type builder struct {
	X      [][]float64
	g, h   []float64
	params Params
	nFeat  int
	nodes  []Node
}

type candidate struct {
	ok          bool
	feature     int
	threshold   float64
	defaultLeft bool
	gain        float64
}

func (b *builder) build(idx []int) Tree {
	b.nodes = b.nodes[:0]
	b.grow(idx, 0)
	return Tree{Nodes: append([]Node(nil), b.nodes...)}
}

func (b *builder) grow(idx []int, depth int) int32 {
	var G, H float64
	for _, i := range idx {
		G += b.g[i]
		H += b.h[i]
	}
	id := int32(len(b.nodes))
	b.nodes = append(b.nodes, Node{
		Leaf:  true,
		Value: -G / (H + b.params.Lambda) * b.params.LearningRate,
		Cover: H,
	})
	if b.params.MaxDepth > 0 && depth >= b.params.MaxDepth {
		return id
	}
	if len(idx) < 2 {
		return id
	}
	best := b.bestSplit(idx, G, H)
	if !best.ok {
		return id
	}

	left := make([]int, 0, len(idx))
	right := make([]int, 0, len(idx))
	for _, i := range idx {
		v := b.X[i][best.feature]
		if (math.IsNaN(v) && best.defaultLeft) || v <= best.threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return id
	}
	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)
	b.nodes[id] = Node{
		Feature:     int32(best.feature),
		Threshold:   best.threshold,
		DefaultLeft: best.defaultLeft,
		Left:        l,
		Right:       r,
		Value:       b.nodes[id].Value,
		Cover:       H,
		Gain:        best.gain,
	}
	return id
}

// bestSplit scans every feature and keeps the highest gain. Results are
// gathered by feature index so ties always resolve to the lowest feature.
func (b *builder) bestSplit(idx []int, G, H float64) candidate {
	found := make([]candidate, b.nFeat)
	if len(idx) < parallelRows || b.nFeat == 1 {
		for f := 0; f < b.nFeat; f++ {
			found[f] = b.scanFeature(idx, f, G, H)
		}
	} else {
		sem := make(chan struct{}, runtime.GOMAXPROCS(0))
		var wg sync.WaitGroup
		for f := 0; f < b.nFeat; f++ {
			wg.Add(1)
			sem <- struct{}{}
			go func(f int) {
				defer wg.Done()
				defer func() { <-sem }()
				found[f] = b.scanFeature(idx, f, G, H)
			}(f)
		}
		wg.Wait()
	}

	var best candidate
	for _, c := range found {
		if c.ok && (!best.ok || c.gain > best.gain) {
			best = c
		}
	}
	if !best.ok || best.gain <= b.params.Gamma || best.gain <= minSplitGain {
		return candidate{}
	}
	return best
}

type valueRow struct {
	v float64
	i int
}

func (b *builder) scanFeature(idx []int, f int, G, H float64) candidate {
	vals := make([]valueRow, 0, len(idx))
	var gm, hm float64
	for _, i := range idx {
		v := b.X[i][f]
		if math.IsNaN(v) {
			gm += b.g[i]
			hm += b.h[i]
			continue
		}
		vals = append(vals, valueRow{v: v, i: i})
	}
	if len(vals) == 0 {
		return candidate{}
	}
	sort.Slice(vals, func(a, c int) bool {
		if vals[a].v != vals[c].v {
			return vals[a].v < vals[c].v
		}
		return vals[a].i < vals[c].i
	})

	lambda := b.params.Lambda
	mcw := b.params.MinChildWeight
	parent := G * G / (H + lambda)
	hasMissing := len(vals) < len(idx)

	best := candidate{feature: f}
	try := func(gl, hl, gr, hr, thr float64, defaultLeft bool) {
		if hl < mcw || hr < mcw || hl == 0 || hr == 0 {
			return
		}
		gain := gl*gl/(hl+lambda) + gr*gr/(hr+lambda) - parent
		if !best.ok || gain > best.gain {
			best = candidate{ok: true, feature: f, threshold: thr, defaultLeft: defaultLeft, gain: gain}
		}
	}

	var gl, hl float64
	for k := 0; k < len(vals)-1; k++ {
		gl += b.g[vals[k].i]
		hl += b.h[vals[k].i]
		cur, next := vals[k].v, vals[k+1].v
		if cur == next {
			continue
		}
		thr := cur + (next-cur)/2
		if !(thr < next) {
			thr = cur
		}
		try(gl, hl, G-gl, H-hl, thr, false)
		if hasMissing {
			try(gl+gm, hl+hm, G-gl-gm, H-hl-hm, thr, true)
		}
	}
	if hasMissing {
		// every observed value left, missing rows alone on the right
		try(G-gm, H-hm, gm, hm, vals[len(vals)-1].v, false)
	}
	return best
}
