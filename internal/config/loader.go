package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr           string   `json:"addr" yaml:"addr" toml:"addr"`
	DataDir        string   `json:"data_dir" yaml:"data_dir" toml:"data_dir"`
	ModelVersion   string   `json:"model_version" yaml:"model_version" toml:"model_version"`
	SafeThreshold  float64  `json:"safe_threshold" yaml:"safe_threshold" toml:"safe_threshold"`
	RefreshMinutes int      `json:"refresh_minutes" yaml:"refresh_minutes" toml:"refresh_minutes"`
	LogLevel       string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	CORSEnabled    bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins    []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	CORSMethods    []string `json:"cors_methods" yaml:"cors_methods" toml:"cors_methods"`
	CORSHeaders    []string `json:"cors_headers" yaml:"cors_headers" toml:"cors_headers"`
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
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Validate rejects values that cannot be corrected by defaulting.
func Validate(cfg Config) error {
	if cfg.SafeThreshold < 0 || cfg.SafeThreshold >= 1 {
		return fmt.Errorf("safe_threshold must be in [0,1), got %v", cfg.SafeThreshold)
	}
	if cfg.RefreshMinutes < 0 {
		return fmt.Errorf("refresh_minutes must not be negative, got %d", cfg.RefreshMinutes)
	}
	if cfg.CORSEnabled && len(cfg.CORSOrigins) == 0 {
		return fmt.Errorf("cors_enabled requires at least one origin")
	}
	return nil
}
