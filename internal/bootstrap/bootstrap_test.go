package bootstrap

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/contact-form/internal/config"
)

func TestInitLogger_Formats(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(config.LogConfig{Level: "info", Format: config.LogFormatJSON}, &buf)
	logger.Debug("hidden")
	logger.Info("shown", "attempt", 1)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.EqualValues(t, 1, line["attempt"])

	buf.Reset()
	logger = InitLogger(config.LogConfig{Level: "debug", Format: config.LogFormatText}, &buf)
	logger.Debug("now visible")
	assert.Contains(t, buf.String(), "msg=\"now visible\"")
}

func TestLoadConfig_SiteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("heading: Say hi\nendpoint: https://formspree.io/f/file\n"), 0o644))

	t.Chdir(dir)
	t.Setenv("SITE_CONFIG", path)
	t.Setenv("CONTACT_ENDPOINT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "Say hi", cfg.Site.Heading)
	assert.Equal(t, config.DefaultSite().Title, cfg.Site.Title)
	assert.Equal(t, "https://formspree.io/f/file", cfg.Contact.Endpoint)
}

func TestLoadConfig_EnvEndpointWins(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SITE_CONFIG", "")
	t.Setenv("CONTACT_ENDPOINT", "https://formspree.io/f/env")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://formspree.io/f/env", cfg.Contact.Endpoint)
	assert.Equal(t, config.DefaultSite().Heading, cfg.Site.Heading)
}

func TestLoadConfig_MissingSiteFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SITE_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := LoadConfig()
	require.Error(t, err)
}
