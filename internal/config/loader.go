package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Caseyio/federal-bid-prediction/internal/gbm"
)

// Config holds runtime parameters for both binaries. bidpredict reads the
// server section, bidfit the fit section.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Server Server `json:"server" yaml:"server" toml:"server"`
	Fit    Fit    `json:"fit" yaml:"fit" toml:"fit"`
}

// Server configures the prediction form service.
type Server struct {
	Addr         string   `json:"addr" yaml:"addr" toml:"addr"`
	ArtifactsDir string   `json:"artifacts_dir" yaml:"artifacts_dir" toml:"artifacts_dir"`
	LogLevel     string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat    string   `json:"log_format" yaml:"log_format" toml:"log_format"`
	MaxBodyBytes int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	Seed         int64    `json:"seed" yaml:"seed" toml:"seed"` // 0 => time-seeded
	CORSEnabled  bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins  []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	CORSMethods  []string `json:"cors_methods" yaml:"cors_methods" toml:"cors_methods"`
	CORSHeaders  []string `json:"cors_headers" yaml:"cors_headers" toml:"cors_headers"`
}

// Fit configures the offline training job. Pointer fields distinguish an
// explicit zero from an absent key.
type Fit struct {
	DataPath  string    `json:"data_path" yaml:"data_path" toml:"data_path"`
	OutPath   string    `json:"out_path" yaml:"out_path" toml:"out_path"`
	Seed      *int64    `json:"seed" yaml:"seed" toml:"seed"` // nil => 42; 0 is a valid seed
	TestRatio float64   `json:"test_ratio" yaml:"test_ratio" toml:"test_ratio"`
	PlotPath  string    `json:"plot_path" yaml:"plot_path" toml:"plot_path"`
	LogLevel  string    `json:"log_level" yaml:"log_level" toml:"log_level"`
	Params    FitParams `json:"params" yaml:"params" toml:"params"`
}

// FitParams overrides individual boosting hyperparameters. A nil field keeps
// the default; max_depth 0 (unlimited) and lambda 0 are honored.
type FitParams struct {
	NEstimators    *int     `json:"n_estimators" yaml:"n_estimators" toml:"n_estimators"`
	MaxDepth       *int     `json:"max_depth" yaml:"max_depth" toml:"max_depth"`
	LearningRate   *float64 `json:"learning_rate" yaml:"learning_rate" toml:"learning_rate"`
	Lambda         *float64 `json:"lambda" yaml:"lambda" toml:"lambda"`
	Gamma          *float64 `json:"gamma" yaml:"gamma" toml:"gamma"`
	MinChildWeight *float64 `json:"min_child_weight" yaml:"min_child_weight" toml:"min_child_weight"`
}

// Apply overlays the set fields onto p.
func (o FitParams) Apply(p gbm.Params) gbm.Params {
	if o.NEstimators != nil {
		p.NEstimators = *o.NEstimators
	}
	if o.MaxDepth != nil {
		p.MaxDepth = *o.MaxDepth
	}
	if o.LearningRate != nil {
		p.LearningRate = *o.LearningRate
	}
	if o.Lambda != nil {
		p.Lambda = *o.Lambda
	}
	if o.Gamma != nil {
		p.Gamma = *o.Gamma
	}
	if o.MinChildWeight != nil {
		p.MinChildWeight = *o.MinChildWeight
	}
	return p
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
