package config

import "time"

// FloorDefault is the hardcoded last-resort quote for one canonical asset
type FloorDefault struct {
	// Value and ChangePct are decimal strings to avoid float drift in config
	Value     string `yaml:"value"`
	ChangePct string `yaml:"change_pct"`
}

// FallbackConfig represents configuration for degraded-data behavior
type FallbackConfig struct {
	// CacheCeiling is the maximum age of a cached snapshot still usable
	// as a fallback value. Much more generous than the expiration
	// interval, which only governs refresh cadence.
	CacheCeiling time.Duration `yaml:"cache_ceiling"`

	// FloorDefaults maps canonical asset ids to their shipped defaults,
	// used when both the cache and the scalar store come up empty
	FloorDefaults map[string]FloorDefault `yaml:"floor_defaults"`
}

// DefaultFallbackConfig returns default fallback configuration.
// The floor values mirror the deployment's long-standing defaults for the
// pinned asset; confirm with the system owner before changing them.
func DefaultFallbackConfig() FallbackConfig {
	return FallbackConfig{
		CacheCeiling: 24 * time.Hour,
		FloorDefaults: map[string]FloorDefault{
			"safe-coin": {
				Value:     "3.28741459",
				ChangePct: "-6.42345300",
			},
		},
	}
}
