// Package config holds the application configuration.
//
// Values come from environment variables parsed with
// github.com/caarlos0/env; an optional YAML site file (SITE_CONFIG) supplies
// page copy, hidden relay fields and message overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"

	"github.com/csg33k/contact-form/internal/domain"
)

// LogFormat selects the slog handler.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// UnmarshalText implements encoding.TextUnmarshaler for LogFormat.
func (f *LogFormat) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "json", "text":
		*f = LogFormat(v)
		return nil
	default:
		return fmt.Errorf("invalid LogFormat: %q (valid options: json, text)", v)
	}
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string    `env:"LOG_LEVEL"  envDefault:"info"`
	Format LogFormat `env:"LOG_FORMAT" envDefault:"json"`
}

// SlogLevel parses Level, falling back to info.
func (l LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`
}

// ContactConfig configures the form relay and banner.
type ContactConfig struct {
	// Endpoint is the relay action URL, e.g. https://formspree.io/f/<id>.
	Endpoint string `env:"CONTACT_ENDPOINT"`

	// HideAfter is how long the status banner stays up.
	HideAfter time.Duration `env:"STATUS_HIDE_AFTER" envDefault:"5s"`

	// RelayTimeout bounds each relay request. Zero means no timeout.
	RelayTimeout time.Duration `env:"RELAY_TIMEOUT" envDefault:"0s"`
}

// AppConfig is the main application configuration.
type AppConfig struct {
	HTTP    HTTPConfig
	Contact ContactConfig
	Log     LogConfig

	// SiteFile points at the optional YAML site file.
	SiteFile string `env:"SITE_CONFIG"`

	// Site is loaded from SiteFile by Load; it has no env bindings.
	Site Site
}

// Site is the YAML site file.
type Site struct {
	Title   string `yaml:"title"`
	Heading string `yaml:"heading"`
	// Intro may carry inline markup (links, emphasis). Sanitize reduces it
	// to the user-generated-content subset before it is rendered raw.
	Intro    string            `yaml:"intro"`
	Endpoint string            `yaml:"endpoint"`
	Hidden   map[string]string `yaml:"hidden"`
	Messages domain.Messages   `yaml:"messages"`
}

// DefaultSite is used when no site file is configured.
func DefaultSite() Site {
	return Site{
		Title:   "Portfolio",
		Heading: "Get in touch",
		Intro:   "Have a project in mind? Send me a message and I'll get back to you.",
	}
}

// LoadSite reads a YAML site file. Missing keys keep DefaultSite values.
func LoadSite(path string) (Site, error) {
	site := DefaultSite()
	raw, err := os.ReadFile(path)
	if err != nil {
		return site, fmt.Errorf("read site file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &site); err != nil {
		return site, fmt.Errorf("parse site file %s: %w", path, err)
	}
	return site, nil
}

// Sanitize applies guardrails to configuration values.
func (c *AppConfig) Sanitize() {
	if c.Contact.HideAfter <= 0 {
		c.Contact.HideAfter = domain.DefaultHideAfter
	}
	if c.Contact.RelayTimeout < 0 {
		c.Contact.RelayTimeout = 0
	}
	c.Contact.Endpoint = strings.TrimSpace(c.Contact.Endpoint)
	if c.Contact.Endpoint == "" {
		c.Contact.Endpoint = strings.TrimSpace(c.Site.Endpoint)
	}
	c.Site.Intro = strings.TrimSpace(introPolicy.Sanitize(c.Site.Intro))
	c.Site.Messages = c.Site.Messages.WithDefaults()
}

var introPolicy = bluemonday.UGCPolicy()

// Validate reports configuration that would make sending impossible.
func (c *AppConfig) Validate() error {
	if c.Contact.Endpoint == "" {
		return fmt.Errorf("contact endpoint is required (set CONTACT_ENDPOINT or endpoint in the site file)")
	}
	if !strings.HasPrefix(c.Contact.Endpoint, "http://") && !strings.HasPrefix(c.Contact.Endpoint, "https://") {
		return fmt.Errorf("contact endpoint must be an http(s) URL: %q", c.Contact.Endpoint)
	}
	return nil
}
