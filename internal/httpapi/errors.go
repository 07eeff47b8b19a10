package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Caseyio/federal-bid-prediction/internal/form"
	"github.com/Caseyio/federal-bid-prediction/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// statusFor maps service errors onto response codes.
func statusFor(err error) int {
	var he HTTPError
	switch {
	case form.IsInvalidInput(err):
		return http.StatusBadRequest
	case errors.As(err, &he):
		return he.StatusCode()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}
