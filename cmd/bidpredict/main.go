package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Caseyio/federal-bid-prediction/internal/config"
	"github.com/Caseyio/federal-bid-prediction/internal/httpapi"
	"github.com/Caseyio/federal-bid-prediction/internal/logx"
	"github.com/Caseyio/federal-bid-prediction/internal/predict"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// splitCSV splits a comma-separated flag value, dropping blanks.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// flagSet reports which flags were given explicitly, so they can win over
// the config file.
func flagSet() map[string]bool {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func main() {
	// Flags with environment variable defaults
	configPath := flag.String("config", os.Getenv("BIDPREDICT_CONFIG"), "Optional config file (.yaml, .json or .toml)")
	addr := flag.String("addr", envOr("BIDPREDICT_ADDR", ":8080"), "HTTP listen address, e.g. :8080")
	artifactsDir := flag.String("artifacts-dir", envOr("BIDPREDICT_ARTIFACTS_DIR", "outputs"), "Directory listed by /api/v1/artifacts (empty disables)")
	logLevel := flag.String("log-level", envOr("BIDPREDICT_LOG_LEVEL", "info"), "Log level: debug, info, warn, error, off")
	logFormat := flag.String("log-format", envOr("BIDPREDICT_LOG_FORMAT", "json"), "Log format: json or console")
	requestLog := flag.String("request-log", envOr("BIDPREDICT_REQUEST_LOG", "info"), "Default per-request log level: off, error, info, debug")
	seed := flag.Int64("seed", 0, "Seed for the placeholder estimator (0 = time-based)")
	maxBody := flag.Int64("max-body-bytes", 1<<20, "Maximum request body size")
	predictTimeout := flag.Duration("predict-timeout", 0, "Per-request estimate timeout (0 = none)")
	corsEnabled := flag.Bool("cors", false, "Enable CORS")
	corsOrigins := flag.String("cors-origins", "", "Comma-separated allowed origins")
	corsMethods := flag.String("cors-methods", "", "Comma-separated allowed methods")
	corsHeaders := flag.String("cors-headers", "", "Comma-separated allowed headers")
	flag.Parse()

	sc := config.Server{
		Addr:         *addr,
		ArtifactsDir: *artifactsDir,
		LogLevel:     *logLevel,
		LogFormat:    *logFormat,
		MaxBodyBytes: *maxBody,
		Seed:         *seed,
		CORSEnabled:  *corsEnabled,
		CORSOrigins:  splitCSV(*corsOrigins),
		CORSMethods:  splitCSV(*corsMethods),
		CORSHeaders:  splitCSV(*corsHeaders),
	}
	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		sc = mergeServer(sc, cfg.Server, flagSet())
	}

	log, err := logx.New(sc.LogLevel, sc.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	if err := run(sc, *requestLog, *predictTimeout, log); err != nil {
		log.Error().Err(err).Msg("server error")
		os.Exit(1)
	}
}

// mergeServer lets non-zero file values fill in anything not given as a flag.
func mergeServer(flags, file config.Server, explicit map[string]bool) config.Server {
	out := flags
	pick := func(name string, apply func()) {
		if !explicit[name] {
			apply()
		}
	}
	if file.Addr != "" {
		pick("addr", func() { out.Addr = file.Addr })
	}
	if file.ArtifactsDir != "" {
		pick("artifacts-dir", func() { out.ArtifactsDir = file.ArtifactsDir })
	}
	if file.LogLevel != "" {
		pick("log-level", func() { out.LogLevel = file.LogLevel })
	}
	if file.LogFormat != "" {
		pick("log-format", func() { out.LogFormat = file.LogFormat })
	}
	if file.MaxBodyBytes != 0 {
		pick("max-body-bytes", func() { out.MaxBodyBytes = file.MaxBodyBytes })
	}
	if file.Seed != 0 {
		pick("seed", func() { out.Seed = file.Seed })
	}
	if file.CORSEnabled {
		pick("cors", func() { out.CORSEnabled = true })
	}
	if len(file.CORSOrigins) > 0 {
		pick("cors-origins", func() { out.CORSOrigins = file.CORSOrigins })
	}
	if len(file.CORSMethods) > 0 {
		pick("cors-methods", func() { out.CORSMethods = file.CORSMethods })
	}
	if len(file.CORSHeaders) > 0 {
		pick("cors-headers", func() { out.CORSHeaders = file.CORSHeaders })
	}
	return out
}

func run(sc config.Server, requestLog string, predictTimeout time.Duration, log zerolog.Logger) error {
	httpapi.SetLogger(log)
	httpapi.SetRequestLogLevel(requestLog)
	httpapi.SetMaxBodyBytes(sc.MaxBodyBytes)
	httpapi.SetPredictTimeout(predictTimeout)
	httpapi.SetCORSOptions(sc.CORSEnabled, sc.CORSOrigins, sc.CORSMethods, sc.CORSHeaders)

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	svc := predict.NewService(predict.NewRandomPredictor(sc.Seed), sc.ArtifactsDir, log)
	srv := &http.Server{
		Addr:              sc.Addr,
		Handler:           httpapi.NewMux(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", sc.Addr).Str("artifacts_dir", sc.ArtifactsDir).Msg("bidpredict listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
