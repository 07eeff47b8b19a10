package predict

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Caseyio/federal-bid-prediction/internal/form"
	"github.com/Caseyio/federal-bid-prediction/internal/registry"
	"github.com/Caseyio/federal-bid-prediction/pkg/types"
)

// Service backs the HTTP layer: option catalogue, estimates and the
// informational artifact listing.
type Service struct {
	predictor    Predictor
	artifactsDir string
	log          zerolog.Logger
}

// NewService wires a predictor and the directory scanned for fitted artifacts.
// An empty artifactsDir disables the listing.
func NewService(p Predictor, artifactsDir string, log zerolog.Logger) *Service {
	return &Service{predictor: p, artifactsDir: artifactsDir, log: log}
}

// Options returns the fixed control values.
func (s *Service) Options() types.OptionsResponse {
	return types.OptionsResponse{
		Agencies:  append([]string(nil), form.Agencies...),
		NAICS:     append([]string(nil), form.NAICS...),
		SetAsides: append([]string(nil), form.SetAsides...),
		Bidders: types.BidderBounds{
			Min:     form.MinBidders,
			Max:     form.MaxBidders,
			Default: form.DefaultBidders,
		},
	}
}

// ErrNotReady is returned by Predict when no predictor is installed.
var ErrNotReady error = notReadyError{}

type notReadyError struct{}

func (notReadyError) Error() string   { return "predictor not ready" }
func (notReadyError) StatusCode() int { return http.StatusServiceUnavailable }

// Predict validates the request and returns a fresh estimate.
func (s *Service) Predict(ctx context.Context, req types.PredictRequest) (types.PredictResponse, error) {
	if s.predictor == nil {
		return types.PredictResponse{}, ErrNotReady
	}
	in := RecordFromRequest(req)
	p, err := s.predictor.Predict(ctx, in)
	if err != nil {
		return types.PredictResponse{}, err
	}
	predictionsTotal.WithLabelValues(in.Agency).Inc()
	if e := s.log.Debug(); e.Enabled() {
		input := zerolog.Dict()
		for i, v := range in.Row() {
			input.Str(form.RowHeader[i], v)
		}
		e.Str("id", p.ID).Dict("input", input).Str("display", p.Display).Msg("estimate served")
	}
	return types.PredictResponse{
		ID:         p.ID,
		Amount:     p.Amount,
		Display:    p.Display,
		Disclaimer: p.Disclaimer,
		Input:      RequestFromRecord(p.Input),
		CreatedAt:  p.CreatedAt,
	}, nil
}

// ListArtifacts scans the artifacts directory. Scan failures are logged and
// yield an empty list.
func (s *Service) ListArtifacts() []types.Artifact {
	if s.artifactsDir == "" {
		return nil
	}
	arts, err := registry.LoadDir(s.artifactsDir)
	if err != nil {
		s.log.Warn().Err(err).Str("dir", s.artifactsDir).Msg("artifact scan failed")
		return nil
	}
	return arts
}

// Ready reports whether a predictor is installed.
func (s *Service) Ready() bool { return s.predictor != nil }

// RecordFromRequest maps the wire request onto an InputRecord, applying the
// bidder default when the count is omitted.
func RecordFromRequest(req types.PredictRequest) form.InputRecord {
	in := form.InputRecord{
		Agency:   req.Agency,
		NAICS:    req.NAICS,
		SetAside: req.SetAside,
		Bidders:  form.DefaultBidders,
	}
	if req.Bidders != nil {
		in.Bidders = *req.Bidders
	}
	return in
}

// RequestFromRecord is the inverse of RecordFromRequest.
func RequestFromRecord(in form.InputRecord) types.PredictRequest {
	n := in.Bidders
	return types.PredictRequest{Agency: in.Agency, NAICS: in.NAICS, SetAside: in.SetAside, Bidders: &n}
}
