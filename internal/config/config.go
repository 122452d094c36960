package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config holds the configuration for the moodshot service.
// Environment variables are parsed from the MOODSHOT_ prefix.
type Config struct {
	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Storage Configuration
	DBDriver    string `envconfig:"DB_DRIVER" default:"sqlite"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"./data/moodshot.db"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Advisory Configuration
	AdvisoryProvider string `envconfig:"ADVISORY_PROVIDER" default:"static"`
	AdvisoryURL      string `envconfig:"ADVISORY_URL" default:"http://localhost:11434"`
	AdvisoryModel    string `envconfig:"ADVISORY_MODEL" default:"llama3.2"`

	// Health Configuration
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"10"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
}

// ResolveDefaults validates driver and provider selections.
func (c *Config) ResolveDefaults() error {
	allowedDB := map[string]bool{"sqlite": true, "postgres": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.DBDriver == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("DB_DRIVER=postgres requires POSTGRES_DSN")
	}
	if c.DBDriver == "sqlite" && c.SQLitePath == "" {
		return fmt.Errorf("DB_DRIVER=sqlite requires SQLITE_PATH")
	}

	allowedAdvisory := map[string]bool{"static": true, "ollama": true}
	if !allowedAdvisory[c.AdvisoryProvider] {
		return fmt.Errorf("unsupported ADVISORY_PROVIDER: %s", c.AdvisoryProvider)
	}

	if c.HealthIntervalSeconds <= 0 {
		return fmt.Errorf("HEALTH_INTERVAL_SECONDS must be positive")
	}
	if c.HealthProbeTimeoutSeconds <= 0 {
		return fmt.Errorf("HEALTH_PROBE_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

// New creates a Config by parsing environment variables.
// Example: MOODSHOT_HTTP_PORT, MOODSHOT_DB_DRIVER.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("MOODSHOT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Int("port", cfg.HTTPPort).
		Str("db_driver", cfg.DBDriver).
		Str("advisory_provider", cfg.AdvisoryProvider).
		Str("postgres_dsn_present", func() string {
			if cfg.PostgresDSN != "" {
				return "true"
			}
			return "false"
		}()).
		Msg("configuration loaded")

	return &cfg, nil
}
