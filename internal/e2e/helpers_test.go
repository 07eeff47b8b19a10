package e2e

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Caseyio/federal-bid-prediction/internal/fitjob"
	"github.com/Caseyio/federal-bid-prediction/internal/gbm"
	"github.com/Caseyio/federal-bid-prediction/internal/httpapi"
	"github.com/Caseyio/federal-bid-prediction/internal/predict"
)

// fitInto runs the fit job on a synthetic award CSV and writes the artifact
// under dir. It returns the run result.
func fitInto(t *testing.T, dir string) *fitjob.Result {
	t.Helper()
	var b strings.Builder
	b.WriteString("award_id,agency,naics,set_aside,num_bidders,start_date,end_date,award_amount\n")
	agencies := []string{"HHS", "CMS", "VA", "NIH"}
	for i := 0; i < 100; i++ {
		bidders := 1 + i%10
		fmt.Fprintf(&b, "A%04d,%s,541511,None,%d,2024-01-01,2024-12-31,%d\n",
			i, agencies[i%4], bidders, 600000+150000*(i%4)+20000*bidders)
	}
	data := filepath.Join(t.TempDir(), "awards.csv")
	if err := os.WriteFile(data, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	opts := fitjob.DefaultOptions()
	opts.DataPath = data
	opts.OutPath = filepath.Join(dir, "xgb_model.gob")
	opts.Params = gbm.DefaultParams()
	opts.Params.NEstimators = 10
	res, err := fitjob.Run(context.Background(), opts, io.Discard)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	return res
}

func newServerForDir(t *testing.T, artifactsDir string, seed int64) *httptest.Server {
	t.Helper()
	svc := predict.NewService(predict.NewRandomPredictor(seed), artifactsDir, zerolog.Nop())
	srv := httptest.NewServer(httpapi.NewMux(svc))
	t.Cleanup(srv.Close)
	return srv
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}
