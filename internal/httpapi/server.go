package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Caseyio/federal-bid-prediction/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Options() types.OptionsResponse
	Predict(ctx context.Context, req types.PredictRequest) (types.PredictResponse, error)
	ListArtifacts() []types.Artifact
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(corsOptions()))
	}

	page := newPageHandler(svc)
	r.Get("/", page.show)
	r.Post("/", page.submit)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/options", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, svc.Options())
		})

		r.Get("/artifacts", func(w http.ResponseWriter, r *http.Request) {
			arts := svc.ListArtifacts()
			if arts == nil {
				arts = []types.Artifact{}
			}
			writeJSON(w, types.ArtifactsResponse{Artifacts: arts})
		})

		r.Post("/predict", func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lvl := requestLogLevel(r)
			ct := r.Header.Get("Content-Type")
			if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
				reject(r, "media_type")
				writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			var req types.PredictRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				// oversize bodies land here too; keep the message generic
				reject(r, "body")
				writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
				return
			}

			resp, err := predict(r, svc, req)
			recordResult(r, err)
			if err != nil {
				status := statusFor(err)
				writeJSONError(w, status, err.Error())
				logOutcome(r, lvl, "predict", status, start, err)
				return
			}
			writeJSON(w, resp)
			logOutcome(r, lvl, "predict", http.StatusOK, start, nil)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

// predict runs one estimate under the server base context, so shutdown
// cancels in-flight work, and the optional per-request timeout.
func predict(r *http.Request, svc Service, req types.PredictRequest) (types.PredictResponse, error) {
	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	if predictTimeout > 0 {
		var cancelT context.CancelFunc
		ctx, cancelT = context.WithTimeout(ctx, predictTimeout)
		defer cancelT()
	}
	return svc.Predict(ctx, req)
}

func corsOptions() cors.Options {
	methods := corsAllowedMethods
	if len(methods) == 0 {
		methods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	}
	headers := corsAllowedHeaders
	if len(headers) == 0 {
		headers = []string{"Content-Type"}
	}
	return cors.Options{
		AllowedOrigins: corsAllowedOrigins,
		AllowedMethods: methods,
		AllowedHeaders: headers,
		MaxAge:         300,
	}
}
