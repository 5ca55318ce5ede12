package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.Equal(t, 300, cfg.Preview.Size)
	assert.Equal(t, 40, cfg.Export.Padding)
	assert.Equal(t, 60, cfg.Export.FooterHeight)
	assert.Equal(t, 5*time.Second, cfg.Logo.FetchTimeout)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("config.yaml", []byte(`
api:
  base-url: https://api.beam.example/api/
export:
  padding: 24
session:
  store: Redis
`), 0o644))

	t.Setenv("PORT", "9000")
	t.Setenv("BEAM_EXPORT_FOOTER_HEIGHT", "80")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "https://api.beam.example/api", cfg.API.BaseURL)
	assert.Equal(t, 24, cfg.Export.Padding)
	assert.Equal(t, 80, cfg.Export.FooterHeight)
	assert.Equal(t, "redis", cfg.Session.Store)
}

func TestLoadBrokenFile(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("config.yaml", []byte("api: [unterminated"), 0o644))

	_, err := Load()
	assert.Error(t, err)
}
