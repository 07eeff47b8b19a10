package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Caseyio/federal-bid-prediction/internal/artifact"
	"github.com/Caseyio/federal-bid-prediction/internal/common/fsutil"
	"github.com/Caseyio/federal-bid-prediction/pkg/types"
)

// LoadDir scans a directory for model artifacts and summarizes each one from
// its metadata. ID is the file name; Path is absolute. Files that fail to
// decode are still listed, with Error set. A missing directory yields an
// empty listing.
func LoadDir(dir string) ([]types.Artifact, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var out []types.Artifact
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, ".") || !strings.HasSuffix(strings.ToLower(name), artifact.Ext) {
			continue
		}
		p := filepath.Join(abs, name)
		a := types.Artifact{ID: name, Path: p}
		if info, err := e.Info(); err == nil {
			a.SizeBytes = info.Size()
			a.ModTime = info.ModTime()
		}
		meta, err := artifact.ReadMeta(p)
		if err != nil {
			a.Error = err.Error()
		} else {
			a.RunID = meta.RunID
			a.CreatedAt = meta.CreatedAt
			a.Features = len(meta.Features)
			a.LogRMSE = meta.Report.LogRMSE
			a.LogR2 = meta.Report.LogR2
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
