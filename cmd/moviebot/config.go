// In file: cmd/moviebot/config.go
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dileep-u-k/moviebot/internal/swaig"
	"github.com/dileep-u-k/moviebot/internal/tmdb"
	"github.com/dileep-u-k/moviebot/internal/tools"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort       = "5000"
	defaultConfigFile = "config.yaml"
)

// AppConfig holds all configuration for the movie bot, loaded from the environment and config files.
type AppConfig struct {
	TMDBAPIKey        string
	Port              string
	Route             string
	RedisAddr         string
	BasicAuthUser     string
	BasicAuthPassword string
	RequestTimeout    time.Duration
	Tools             tools.Settings
}

// fileConfig is the shape of the optional config.yaml.
type fileConfig struct {
	tools.Settings `yaml:",inline"`
	RequestTimeout string `yaml:"request_timeout"`
}

// LoadConfig loads all configuration from a .env file, environment variables, and config.yaml.
func LoadConfig() (*AppConfig, error) {
	// In release mode configuration comes straight from the environment.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("WARNING: No .env file found for local development.")
		}
	}

	cfg := &AppConfig{
		TMDBAPIKey:        os.Getenv("TMDB_API_KEY"),
		Port:              envOr("PORT", defaultPort),
		Route:             envOr("SWAIG_ROUTE", swaig.DefaultWebhookRoute),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		BasicAuthUser:     os.Getenv("SWML_BASIC_AUTH_USER"),
		BasicAuthPassword: os.Getenv("SWML_BASIC_AUTH_PASSWORD"),
		RequestTimeout:    tmdb.DefaultTimeout,
		Tools:             tools.DefaultSettings(),
	}
	if cfg.TMDBAPIKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY environment variable is not set")
	}
	if cfg.Route[0] != '/' {
		cfg.Route = "/" + cfg.Route
	}

	if err := cfg.loadFile(envOr("CONFIG_FILE", defaultConfigFile)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile overlays the tool settings from a YAML file. A missing file is not an error.
func (cfg *AppConfig) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if fc.Language != "" {
		cfg.Tools.Language = fc.Language
	}
	if fc.ListLimit > 0 {
		cfg.Tools.ListLimit = fc.ListLimit
	}
	if fc.ExtendedListLimit > 0 {
		cfg.Tools.ExtendedListLimit = fc.ExtendedListLimit
	}
	if fc.RequestTimeout != "" {
		d, err := time.ParseDuration(fc.RequestTimeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid request_timeout %q in %s", fc.RequestTimeout, path)
		}
		cfg.RequestTimeout = d
	}
	return nil
}

// BasicAuthEnabled reports whether the webhook route is protected.
func (cfg *AppConfig) BasicAuthEnabled() bool {
	return cfg.BasicAuthUser != "" && cfg.BasicAuthPassword != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
