package config

import "time"

// PriceSyncConfig represents configuration for the price refresh engine
type PriceSyncConfig struct {
	// ExpirationInterval is the staleness window: a cache entry older
	// than this makes the next read-triggering call due for a fetch
	ExpirationInterval time.Duration `yaml:"expiration_interval"`

	// SyncCheckInterval is how often the periodic scheduler re-evaluates
	// whether a refresh is due. Should be a fraction of ExpirationInterval.
	SyncCheckInterval time.Duration `yaml:"sync_check_interval"`

	// Currencies are the currency codes kept in sync by the periodic loop
	Currencies []string `yaml:"currencies"`
}

// DefaultPriceSyncConfig returns default price sync configuration
func DefaultPriceSyncConfig() PriceSyncConfig {
	return PriceSyncConfig{
		ExpirationInterval: 240 * time.Second,
		SyncCheckInterval:  30 * time.Second,
		Currencies:         []string{"USD"},
	}
}
