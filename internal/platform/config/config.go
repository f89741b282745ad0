// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only (flags override a copy).
  - DI-Friendly: Passed to the token store and API client via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/codejourney/internal/platform/constants"
	"github.com/taibuivan/codejourney/pkg/pagination"
)

// # Token Store Kinds

const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// # Output Formats

const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// # Configuration Schema

// Config holds all runtime configuration for the CodeJourney client.
type Config struct {

	// Remote API
	APIURL         string        `env:"API_URL"         envDefault:"https://back-code-journey.vercel.app"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS"  envDefault:"5"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" envDefault:"10"`

	// Runtime
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`
	LogFile     string `env:"LOG_FILE"`

	// Client-local storage of the bearer token
	TokenStore string `env:"TOKEN_STORE" envDefault:"file"`
	TokenFile  string `env:"TOKEN_FILE"`
	RedisURL   string `env:"REDIS_URL"`

	// Presentation
	PageSize int    `env:"PAGE_SIZE" envDefault:"9"`
	Output   string `env:"OUTPUT"    envDefault:"text"`
	NoColor  bool   `env:"NO_COLOR"  envDefault:"false"`
}

// # Configuration Loading

// Load parses CODEJOURNEY_-prefixed environment variables into a [Config] struct.
func Load() (*Config, error) {
	return LoadWith(env.Options{Prefix: "CODEJOURNEY_"})
}

// LoadWith parses the environment with explicit options. Tests use it to
// inject an environment map instead of touching the process environment.
func LoadWith(options env.Options) (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	if err := env.ParseWithOptions(cfg, options); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// NO_COLOR is a cross-tool convention and never carries our prefix.
	if _, ok := lookup(options, "NO_COLOR"); ok {
		cfg.NoColor = true
	}

	if cfg.TokenFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.TokenFile = filepath.Join(home, constants.DefaultStorageDir, constants.DefaultStorageFile)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	switch c.TokenStore {
	case StoreFile, StoreMemory:
	case StoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config: CODEJOURNEY_REDIS_URL is required when token store is %q", StoreRedis)
		}
	default:
		return fmt.Errorf("config: unknown token store %q", c.TokenStore)
	}

	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("config: unknown output format %q", c.Output)
	}

	if !c.IsDevelopment() && !c.IsProduction() {
		return fmt.Errorf("config: unknown environment %q", c.Environment)
	}

	if c.PageSize < 1 {
		c.PageSize = constants.PostsPerPage
	}
	if c.PageSize > pagination.MaxLimit {
		return fmt.Errorf("config: page size %d exceeds the maximum of %d", c.PageSize, pagination.MaxLimit)
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = constants.DefaultRequestTimeout
	}

	return nil
}

// IsDevelopment reports whether the client is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the client is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func lookup(options env.Options, key string) (string, bool) {
	if options.Environment != nil {
		v, ok := options.Environment[key]
		return v, ok
	}
	return os.LookupEnv(key)
}
