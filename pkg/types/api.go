package types

import "time"

// PredictRequest carries the four form selections.
type PredictRequest struct {
	// Contracting agency.
	// example: HHS
	Agency string `json:"agency" example:"HHS"`
	// NAICS code of the solicitation.
	// example: 541511
	NAICS string `json:"naics" example:"541511"`
	// Set-aside designation.
	// example: None
	SetAside string `json:"set_aside" example:"None"`
	// Expected number of bidders (1-10). Omitted means the default (3).
	// example: 3
	Bidders *int `json:"num_bidders,omitempty" example:"3"`
}

// PredictResponse is returned by POST /api/v1/predict.
type PredictResponse struct {
	// Unique id of this prediction.
	// example: 0b9a4c8e-8d35-4e43-9f0c-1d7a1f2b6e3a
	ID string `json:"id" example:"0b9a4c8e-8d35-4e43-9f0c-1d7a1f2b6e3a"`
	// Raw predicted amount in dollars.
	// example: 1234567.89
	Amount float64 `json:"amount" example:"1234567.89"`
	// Amount formatted as US currency.
	// example: $1,234,567.89
	Display string `json:"display" example:"$1,234,567.89"`
	// Static notice that the figure is a placeholder.
	Disclaimer string `json:"disclaimer"`
	// Echo of the normalized input row.
	Input PredictRequest `json:"input"`
	// Server time the prediction was produced.
	CreatedAt time.Time `json:"created_at"`
}

// OptionsResponse lists the selectable values for each control.
type OptionsResponse struct {
	// example: ["HHS","CMS","VA","NIH"]
	Agencies []string `json:"agencies"`
	// example: ["541511","541512","541519"]
	NAICS []string `json:"naics"`
	// example: ["None","8(a)","SDVOSB","WOSB"]
	SetAsides []string     `json:"set_asides"`
	Bidders   BidderBounds `json:"num_bidders"`
}

// ArtifactsResponse wraps the list returned by GET /api/v1/artifacts.
type ArtifactsResponse struct {
	Artifacts []Artifact `json:"artifacts"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
