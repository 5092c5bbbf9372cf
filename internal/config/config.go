// Package config contains everything related to configuration
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Default values
const (
	DefaultBaseURL    = "https://server.codeium.com/api/v1"
	DefaultOutputPath = "windsurf_analytics.csv"
	DefaultBatchSize  = 10
	DefaultFormat     = FormatCSV
)

// Output formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// IDETypes lists the accepted values for the IDE type filter.
var IDETypes = []string{"editor", "jetbrains"}

var (
	// ErrMissingServiceKey is returned when no service key was configured.
	ErrMissingServiceKey = errors.New("service key is required")
	// ErrInvalidConfig wraps every other validation failure.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config holds the application configuration.
type Config struct {
	ServiceKey     string        `env:"WINDSURF_SERVICE_KEY"`
	BaseURL        string        `env:"WINDSURF_BASE_URL" envDefault:"https://server.codeium.com/api/v1"`
	OutputPath     string        `env:"WINDSURF_OUTPUT" envDefault:"windsurf_analytics.csv"`
	Format         string        `env:"WINDSURF_FORMAT" envDefault:"csv"`
	GroupName      string        `env:"WINDSURF_GROUP_NAME"`
	StartTimestamp string        `env:"WINDSURF_START_TIMESTAMP"`
	EndTimestamp   string        `env:"WINDSURF_END_TIMESTAMP"`
	LogLevel       string        `env:"WINDSURF_LOG_LEVEL" envDefault:"info"`
	IDETypes       []string      `env:"WINDSURF_IDE_TYPES" envSeparator:","`
	BatchSize      int           `env:"WINDSURF_BATCH_SIZE" envDefault:"10"`
	HTTPTimeout    time.Duration `env:"WINDSURF_HTTP_TIMEOUT"`

	// EnvFile is the .env file that was loaded, if any.
	EnvFile string
}

// Load reads configuration from .env files and environment variables.
// Variables already present in the environment win over .env values.
// Load does not validate; callers overlay flags first and then call Validate.
func Load() (*Config, error) {
	cfg := &Config{}

	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", path, err)
			}
			cfg.EnvFile = path
			break
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration before any network activity.
func (c *Config) Validate() error {
	c.ServiceKey = strings.TrimSpace(c.ServiceKey)
	if c.ServiceKey == "" {
		return ErrMissingServiceKey
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base URL %q must be an absolute http(s) URL", ErrInvalidConfig, c.BaseURL)
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	if c.OutputPath == "" {
		return fmt.Errorf("%w: output path is empty", ErrInvalidConfig)
	}

	c.Format = strings.ToLower(c.Format)
	if c.Format != FormatCSV && c.Format != FormatXLSX {
		return fmt.Errorf("%w: unknown format %q (want %s or %s)", ErrInvalidConfig, c.Format, FormatCSV, FormatXLSX)
	}

	if err := validateTimestamp("start timestamp", c.StartTimestamp); err != nil {
		return err
	}
	if err := validateTimestamp("end timestamp", c.EndTimestamp); err != nil {
		return err
	}

	for _, ide := range c.IDETypes {
		if !slices.Contains(IDETypes, ide) {
			return fmt.Errorf("%w: unknown IDE type %q (want one of %s)",
				ErrInvalidConfig, ide, strings.Join(IDETypes, ", "))
		}
	}

	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size must be positive, got %d", ErrInvalidConfig, c.BatchSize)
	}

	return nil
}

// MissingServiceKeyHint explains how to supply a service key.
func MissingServiceKeyHint() string {
	return `Service key is required. Either:
  1. Set WINDSURF_SERVICE_KEY in your .env file, or
  2. Use --service-key argument`
}

func validateTimestamp(name, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(time.RFC3339, value); err != nil {
		return fmt.Errorf("%w: %s %q is not RFC 3339 (e.g. 2024-01-01T00:00:00Z)", ErrInvalidConfig, name, value)
	}
	return nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Next to the binary
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), ".env"))
	}

	// Home directory
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "windsurf-analytics", ".env"))
	}

	return paths
}
