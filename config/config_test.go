package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
price_sync:
  expiration_interval: 120s
  currencies: ["USD", "EUR"]
upstream:
  base_url: "https://feed.example.com"
test_network_mode: true
ops_port: "9090"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Minute, cfg.PriceSync.ExpirationInterval)
	assert.Equal(t, []string{"USD", "EUR"}, cfg.PriceSync.Currencies)
	assert.Equal(t, "https://feed.example.com", cfg.Upstream.BaseURL)
	assert.True(t, cfg.TestNetworkMode)
	assert.Equal(t, "9090", cfg.OpsPort)

	// Untouched sections keep their defaults
	assert.Equal(t, DefaultHistoryConfig().SecondaryCutover, cfg.History.SecondaryCutover)
	assert.Equal(t, DefaultFallbackConfig().CacheCeiling, cfg.Fallback.CacheCeiling)
}

func TestLoad_EmptyFileIsAllDefaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsInvalidAliasConfig(t *testing.T) {
	path := writeConfig(t, `
alias:
  groups:
    - canonical: "A"
      members: ["shared"]
    - canonical: "B"
      members: ["shared"]
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefaultAliasConfigIsValid(t *testing.T) {
	cfg := DefaultAliasConfig()
	assert.NoError(t, cfg.Validate())
}
