// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Output formats accepted by Format.
const (
	FormatPDF  = "pdf"
	FormatHTML = "html"
)

// Config holds the application configuration loaded from environment variables.
// Command-line flags override these values.
type Config struct {
	// GitHubToken is the environment tier of the credential chain.
	GitHubToken string `env:"GHP_TOKEN"`

	APIURL         string        `env:"PR2PDF_API_URL" envDefault:"https://api.github.com/"`
	RequestTimeout time.Duration `env:"PR2PDF_REQUEST_TIMEOUT" envDefault:"30s"`
	MaxFilePages   int           `env:"PR2PDF_MAX_FILE_PAGES" envDefault:"30"`
	Format         string        `env:"PR2PDF_FORMAT" envDefault:"pdf"`

	// CachePath selects a persistent SQLite HTTP cache; empty keeps the cache in memory.
	CachePath   string        `env:"PR2PDF_CACHE_PATH"`
	CacheMaxAge time.Duration `env:"PR2PDF_CACHE_MAX_AGE" envDefault:"168h"`

	// GHLogin allows an interactive `gh auth login` when no token is found.
	GHLogin bool `env:"PR2PDF_GH_LOGIN" envDefault:"false"`
	Debug   bool `env:"PR2PDF_DEBUG" envDefault:"false"`
}

// Load reads configuration from environment variables and returns a validated Config.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("env.Parse: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges. It is called again after flags are applied.
func (c *Config) Validate() error {
	var errs []error

	if c.APIURL == "" {
		errs = append(errs, errors.New("API URL must not be empty"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout))
	}
	if c.MaxFilePages <= 0 {
		errs = append(errs, fmt.Errorf("max file pages must be positive, got %d", c.MaxFilePages))
	}
	if c.Format != FormatPDF && c.Format != FormatHTML {
		errs = append(errs, fmt.Errorf("format must be %q or %q, got %q", FormatPDF, FormatHTML, c.Format))
	}
	if c.CacheMaxAge < 0 {
		errs = append(errs, fmt.Errorf("cache max age must not be negative, got %s", c.CacheMaxAge))
	}

	return errors.Join(errs...)
}
