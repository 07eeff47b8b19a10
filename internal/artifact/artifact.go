// Package artifact persists a fitted regressor together with the metadata
// needed to interpret it later.
package artifact

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Caseyio/federal-bid-prediction/internal/common/fsutil"
	"github.com/Caseyio/federal-bid-prediction/internal/evaluate"
	"github.com/Caseyio/federal-bid-prediction/internal/gbm"
)

// DefaultPath is where the fit job writes unless told otherwise. The
// artifact is a gob stream, so it takes the place of the xgb_model.pkl
// pickle under the same directory and stem.
const DefaultPath = "outputs/xgb_model.gob"

// Ext is the file extension the registry scans for.
const Ext = ".gob"

const (
	magic   = "bidpredict-model"
	version = 1
)

var ErrNotArtifact = errors.New("artifact: not a model artifact")

// Metadata describes how a model was produced.
type Metadata struct {
	RunID      string          `json:"run_id" yaml:"run_id"`
	CreatedAt  time.Time       `json:"created_at" yaml:"created_at"`
	DataPath   string          `json:"data_path" yaml:"data_path"`
	Target     string          `json:"target" yaml:"target"`
	Features   []string        `json:"features" yaml:"features"`
	Excluded   []string        `json:"excluded" yaml:"excluded"`
	Seed       int64           `json:"seed" yaml:"seed"`
	TestRatio  float64         `json:"test_ratio" yaml:"test_ratio"`
	Report     evaluate.Report `json:"report" yaml:"report"`
	Params     gbm.Params      `json:"params" yaml:"params"`
	Importance []float64       `json:"importance,omitempty" yaml:"importance,omitempty"`
}

// YAML renders the metadata for humans.
func (m Metadata) YAML() ([]byte, error) {
	return yaml.Marshal(m)
}

// Artifact is a model plus its metadata.
type Artifact struct {
	Meta  Metadata
	Model *gbm.Regressor
}

type header struct {
	Magic   string
	Version int
}

// Encode writes a to w as three gob values: header, metadata, model.
func Encode(w io.Writer, a Artifact) error {
	if a.Model == nil {
		return fmt.Errorf("artifact: nil model")
	}
	if len(a.Meta.Features) != a.Model.NFeatures {
		return fmt.Errorf("artifact: %d feature names for a %d-feature model", len(a.Meta.Features), a.Model.NFeatures)
	}
	model, err := a.Model.MarshalBinary()
	if err != nil {
		return err
	}
	enc := gob.NewEncoder(w)
	if err := enc.Encode(header{Magic: magic, Version: version}); err != nil {
		return fmt.Errorf("artifact: encode header: %w", err)
	}
	if err := enc.Encode(a.Meta); err != nil {
		return fmt.Errorf("artifact: encode metadata: %w", err)
	}
	if err := enc.Encode(model); err != nil {
		return fmt.Errorf("artifact: encode model: %w", err)
	}
	return nil
}

func decodeHeader(dec *gob.Decoder) error {
	var h header
	if err := dec.Decode(&h); err != nil {
		return fmt.Errorf("%w: %v", ErrNotArtifact, err)
	}
	if h.Magic != magic {
		return ErrNotArtifact
	}
	if h.Version != version {
		return fmt.Errorf("artifact: unsupported version %d", h.Version)
	}
	return nil
}

// Decode reads an artifact written by Encode.
func Decode(r io.Reader) (Artifact, error) {
	dec := gob.NewDecoder(r)
	if err := decodeHeader(dec); err != nil {
		return Artifact{}, err
	}
	var a Artifact
	if err := dec.Decode(&a.Meta); err != nil {
		return Artifact{}, fmt.Errorf("artifact: decode metadata: %w", err)
	}
	var model []byte
	if err := dec.Decode(&model); err != nil {
		return Artifact{}, fmt.Errorf("artifact: decode model: %w", err)
	}
	a.Model = &gbm.Regressor{}
	if err := a.Model.UnmarshalBinary(model); err != nil {
		return Artifact{}, err
	}
	return a, nil
}

// Save writes a to path atomically, replacing any previous artifact.
func Save(path string, a Artifact) error {
	var buf bytes.Buffer
	if err := Encode(&buf, a); err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("artifact: save: %w", err)
	}
	return nil
}

// Load reads the artifact at path.
func Load(path string) (Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return Artifact{}, err
	}
	defer f.Close()
	a, err := Decode(f)
	if err != nil {
		return Artifact{}, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// ReadMeta reads only the metadata, leaving the model undecoded.
func ReadMeta(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, err
	}
	defer f.Close()
	dec := gob.NewDecoder(f)
	if err := decodeHeader(dec); err != nil {
		return Metadata{}, fmt.Errorf("%s: %w", path, err)
	}
	var m Metadata
	if err := dec.Decode(&m); err != nil {
		return Metadata{}, fmt.Errorf("%s: decode metadata: %w", path, err)
	}
	return m, nil
}
