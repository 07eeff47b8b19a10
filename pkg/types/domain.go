package types

import "time"

// Artifact describes a fitted model file found on disk.
type Artifact struct {
	// Stable identifier for the artifact (file name).
	// example: xgb_model.gob
	ID string `json:"id" example:"xgb_model.gob"`
	// Absolute path to the artifact file.
	// example: /srv/bids/outputs/xgb_model.gob
	Path string `json:"path" example:"/srv/bids/outputs/xgb_model.gob"`
	// Size of the file in bytes.
	// example: 184320
	SizeBytes int64 `json:"size_bytes" example:"184320"`
	// Last modification time of the file.
	ModTime time.Time `json:"mod_time"`
	// Identifier of the fit run that produced the artifact.
	// example: 6f1c0a52-3f0e-4a55-9d39-2f5f4f1f7d0e
	RunID string `json:"run_id,omitempty" example:"6f1c0a52-3f0e-4a55-9d39-2f5f4f1f7d0e"`
	// Time the model was fitted.
	CreatedAt time.Time `json:"created_at,omitempty"`
	// Number of encoded feature columns the model expects.
	// example: 42
	Features int `json:"features,omitempty" example:"42"`
	// Held-out RMSE in log1p space.
	// example: 0.8123
	LogRMSE float64 `json:"log_rmse,omitempty" example:"0.8123"`
	// Held-out R² in log1p space.
	// example: 0.41
	LogR2 float64 `json:"log_r2,omitempty" example:"0.41"`
	// Set when the file could not be decoded.
	Error string `json:"error,omitempty"`
}

// BidderBounds describes the integer bidder-count control.
type BidderBounds struct {
	// example: 1
	Min int `json:"min" example:"1"`
	// example: 10
	Max int `json:"max" example:"10"`
	// example: 3
	Default int `json:"default" example:"3"`
}
