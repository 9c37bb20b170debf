package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadFromYAMLFile(t *testing.T) {
	path := writeConfigFile(t, "config.yaml", `
name: solar-system
remote:
  host: https://api.example.com
  namespace: v1
  max_requests_per_transform: 10
  include:
    - moons
`)

	cfg, err := NewLoader().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "solar-system", cfg.Name)
	assert.Equal(t, "https://api.example.com", cfg.Remote.Host)
	assert.Equal(t, "v1", cfg.Remote.Namespace)
	assert.Equal(t, 10, cfg.Remote.MaxRequestsPerTransform)
	assert.Equal(t, []string{"moons"}, cfg.Remote.Include)

	// defaults survive a partial file
	assert.Equal(t, "remoteId", cfg.Remote.KeyName)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromJSONFile(t *testing.T) {
	path := writeConfigFile(t, "config.json", `{
		"name": "solar-system",
		"remote": {"host": "https://api.example.com"}
	}`)

	cfg, err := NewLoader().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.Remote.Host)
}

func TestLoadRejectsMissingHost(t *testing.T) {
	path := writeConfigFile(t, "config.yaml", `
name: solar-system
`)

	_, err := NewLoader().LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := writeConfigFile(t, "config.toml", `name = "solar-system"`)
	_, err := NewLoader().LoadFromFile(path)
	assert.Error(t, err)
}

func TestLoadRejectsEnabledRewriteWithoutOperations(t *testing.T) {
	path := writeConfigFile(t, "config.yaml", `
name: solar-system
remote:
  host: https://api.example.com
rewrite:
  enabled: true
`)

	_, err := NewLoader().LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rewrite")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "recordsync", cfg.Name)
	assert.Equal(t, time.Duration(0), cfg.Remote.Timeout)
	assert.Equal(t, 0, cfg.Remote.MaxRequestsPerTransform)
	assert.Equal(t, "remoteId", cfg.Remote.KeyName)
	assert.True(t, cfg.Metrics.Enabled)
}
