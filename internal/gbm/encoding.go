package gbm

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// wireVersion is bumped whenever the encoded layout changes.
const wireVersion = 1

type wireModel struct {
	Version   int
	Params    Params
	BaseScore float64
	NFeatures int
	Trees     []Tree
}

// MarshalBinary implements encoding.BinaryMarshaler using gob.
func (r *Regressor) MarshalBinary() ([]byte, error) {
	if !r.Fitted() {
		return nil, ErrNotFitted
	}
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(wireModel{
		Version:   wireVersion,
		Params:    r.Params,
		BaseScore: r.BaseScore,
		NFeatures: r.NFeatures,
		Trees:     r.Trees,
	})
	if err != nil {
		return nil, fmt.Errorf("gbm: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (r *Regressor) UnmarshalBinary(data []byte) error {
	var w wireModel
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return fmt.Errorf("gbm: decode: %w", err)
	}
	if w.Version != wireVersion {
		return fmt.Errorf("gbm: unsupported model version %d", w.Version)
	}
	for ti, t := range w.Trees {
		if err := t.check(w.NFeatures); err != nil {
			return fmt.Errorf("gbm: tree %d: %w", ti, err)
		}
	}
	r.Params = w.Params
	r.BaseScore = w.BaseScore
	r.NFeatures = w.NFeatures
	r.Trees = w.Trees
	return nil
}

// check rejects trees whose links or features point outside their bounds, so
// a corrupted file cannot make predict loop or panic.
func (t Tree) check(nFeat int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("no nodes")
	}
	for i, n := range t.Nodes {
		if n.Leaf {
			continue
		}
		if n.Feature < 0 || int(n.Feature) >= nFeat {
			return fmt.Errorf("node %d: feature %d out of range", i, n.Feature)
		}
		// children are always appended after their parent
		if int(n.Left) <= i || int(n.Right) <= i || int(n.Left) >= len(t.Nodes) || int(n.Right) >= len(t.Nodes) {
			return fmt.Errorf("node %d: bad child link", i)
		}
	}
	return nil
}
