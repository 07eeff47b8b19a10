package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Caseyio/federal-bid-prediction/internal/evaluate"
	"github.com/Caseyio/federal-bid-prediction/internal/gbm"
)

func fitted(t *testing.T) *gbm.Regressor {
	t.Helper()
	X := [][]float64{{1, 0}, {2, 1}, {3, 0}, {4, 1}, {5, 0}, {6, 1}}
	y := []float64{1, 2, 3, 4, 5, 6}
	r := gbm.New(gbm.WithNEstimators(5))
	if err := r.Fit(X, y); err != nil {
		t.Fatalf("fit: %v", err)
	}
	return r
}

func sample(t *testing.T) Artifact {
	t.Helper()
	return Artifact{
		Meta: Metadata{
			RunID:     "run-1",
			CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
			Target:    "log_award",
			Features:  []string{"num_bidders", "agency_VA"},
			Excluded:  []string{"award_amount", "log_award"},
			Seed:      42,
			TestRatio: 0.25,
			Report:    evaluate.Report{LogRMSE: 0.4, LogR2: 0.6, NTrain: 4, NTest: 2},
			Params:    gbm.DefaultParams(),
		},
		Model: fitted(t),
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "outputs", "xgb_model.gob")
	a := sample(t)
	if err := Save(p, a); err != nil {
		t.Fatalf("save: %v", err)
	}
	back, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if back.Meta.RunID != "run-1" || !back.Meta.CreatedAt.Equal(a.Meta.CreatedAt) || back.Meta.Report != a.Meta.Report {
		t.Fatalf("metadata mismatch: %+v", back.Meta)
	}
	X := [][]float64{{2.5, 1}, {5.5, 0}}
	want, _ := a.Model.Predict(X)
	got, err := back.Model.Predict(X)
	if err != nil {
		t.Fatal(err)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("row %d: %v != %v", i, got[i], want[i])
		}
	}
}

func TestReadMeta(t *testing.T) {
	p := filepath.Join(t.TempDir(), "m.gob")
	if err := Save(p, sample(t)); err != nil {
		t.Fatal(err)
	}
	m, err := ReadMeta(p)
	if err != nil {
		t.Fatalf("read meta: %v", err)
	}
	if len(m.Features) != 2 || m.Seed != 42 || m.Params.NEstimators != 100 {
		t.Fatalf("unexpected metadata %+v", m)
	}
}

func TestSaveRejectsMismatchedFeatures(t *testing.T) {
	a := sample(t)
	a.Meta.Features = []string{"only_one"}
	if err := Save(filepath.Join(t.TempDir(), "m.gob"), a); err == nil {
		t.Fatalf("expected feature count error")
	}
	if err := Save(filepath.Join(t.TempDir(), "m.gob"), Artifact{}); err == nil {
		t.Fatalf("expected nil model error")
	}
}

func TestLoadRejectsForeignFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "junk.gob")
	if err := os.WriteFile(p, []byte("definitely not gob"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(p); !errors.Is(err, ErrNotArtifact) {
		t.Fatalf("expected ErrNotArtifact, got %v", err)
	}
	if _, err := ReadMeta(p); !errors.Is(err, ErrNotArtifact) {
		t.Fatalf("expected ErrNotArtifact, got %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.gob")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist, got %v", err)
	}
}

func TestMetadataYAML(t *testing.T) {
	b, err := sample(t).Meta.YAML()
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	for _, want := range []string{"run_id: run-1", "target: log_award", "log_rmse: 0.4", "n_estimators: 100", "- agency_VA"} {
		if !strings.Contains(s, want) {
			t.Fatalf("yaml missing %q:\n%s", want, s)
		}
	}
}
