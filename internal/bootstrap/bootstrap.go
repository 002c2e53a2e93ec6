// Package bootstrap loads configuration and builds the shared logger and
// contact wiring used by both binaries.
package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/csg33k/contact-form/internal/adapters/relay"
	"github.com/csg33k/contact-form/internal/config"
)

// InitLogger initializes the structured logger and makes it the default.
func InitLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler
	if cfg.Format == config.LogFormatText {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from the environment, an optional .env file
// and the optional site file.
func LoadConfig() (config.AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Site = config.DefaultSite()
	if cfg.SiteFile != "" {
		site, err := config.LoadSite(cfg.SiteFile)
		if err != nil {
			return cfg, err
		}
		cfg.Site = site
	}

	cfg.Sanitize()
	return cfg, nil
}

// NewRelay builds the relay client for cfg.
func NewRelay(cfg config.ContactConfig) *relay.Client {
	return relay.New(relay.WithTimeout(cfg.RelayTimeout))
}
