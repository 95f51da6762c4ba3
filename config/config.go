package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the market-sync library
type Config struct {
	PriceSync   PriceSyncConfig   `yaml:"price_sync"`
	Alias       AliasConfig       `yaml:"alias"`
	Upstream    UpstreamConfig    `yaml:"upstream"`
	Fallback    FallbackConfig    `yaml:"fallback"`
	ScalarStore ScalarStoreConfig `yaml:"scalar_store"`
	History     HistoryConfig     `yaml:"history"`

	// TestNetworkMode zeroes quotes for alias members flagged
	// zero_on_test_network while preserving their timestamps
	TestNetworkMode bool `yaml:"test_network_mode"`

	// OpsPort is the listen port for the health/metrics server.
	// Empty disables the ops server.
	OpsPort string `yaml:"ops_port"`
}

// Load reads and parses configuration from a YAML file, filling
// unset sections with defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Alias.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns a configuration with all sections set to their defaults
func Default() *Config {
	return &Config{
		PriceSync:   DefaultPriceSyncConfig(),
		Alias:       DefaultAliasConfig(),
		Upstream:    DefaultUpstreamConfig(),
		Fallback:    DefaultFallbackConfig(),
		ScalarStore: DefaultScalarStoreConfig(),
		History:     DefaultHistoryConfig(),
	}
}
