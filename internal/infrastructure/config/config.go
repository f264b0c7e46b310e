package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all backend configuration, loaded from environment variables.
type Config struct {
	Server    ServerConfig
	Registry  RegistryConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration. The bridge serves a local
// orchestrator, so the default bind is loopback.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"5055"`
	Host string `envconfig:"HOST" default:"127.0.0.1"`
}

// RegistryConfig holds application-registry configuration.
type RegistryConfig struct {
	StorePath string `envconfig:"REGISTRY_STORE_PATH" default:""`
	ScanDepth int    `envconfig:"SCAN_DEPTH" default:"3"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"20"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"40"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Registry.StorePath == "" {
		cfg.Registry.StorePath = defaultStorePath()
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or falls back to the
// built-in defaults.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "5055",
			Host: "127.0.0.1",
		},
		Registry: RegistryConfig{
			StorePath: defaultStorePath(),
			ScanDepth: 3,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 20,
			Burst:             40,
			Enabled:           true,
		},
	}
}

// defaultStorePath keeps the registry next to the user's other app data.
func defaultStorePath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "ayvor", "applications.json")
}
