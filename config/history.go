package config

import "time"

// HistoryConfig represents configuration for historical price lookups
type HistoryConfig struct {
	// TimestampTolerance is the maximum deviation between the requested
	// timestamp and the one the upstream actually returned; beyond it
	// the response is unusable
	TimestampTolerance time.Duration `yaml:"timestamp_tolerance"`

	// SecondaryCutover is the unix time from which the pinned asset
	// family's history is served by the secondary feed
	SecondaryCutover int64 `yaml:"secondary_cutover"`
}

// DefaultHistoryConfig returns default history configuration
func DefaultHistoryConfig() HistoryConfig {
	// 2022-07-28 UTC, the date the pinned asset was listed on the
	// secondary feed
	const cutover = 1658966400

	return HistoryConfig{
		TimestampTolerance: 24 * time.Hour,
		SecondaryCutover:   cutover,
	}
}
