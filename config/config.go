// Package config loads server configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the server's runtime configuration. Command-line flags in
// cmd/server override these values when set.
type Config struct {
	Port     int    `env:"CONDO_PORT" envDefault:"8080"`
	DBPath   string `env:"CONDO_DB_PATH" envDefault:"condo.db"`
	LogLevel string `env:"CONDO_LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
