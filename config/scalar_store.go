package config

import "time"

// ScalarStoreConfig represents configuration for the durable
// last-known-good store used by the fallback policy
type ScalarStoreConfig struct {
	// Enabled selects the redis-backed store; when false an in-memory
	// store is used and records do not survive restarts
	Enabled bool `yaml:"enabled"`

	// Addr is the redis server address
	Addr string `yaml:"addr"`

	// Password for redis auth, empty for none
	Password string `yaml:"password"`

	// DB is the redis database number
	DB int `yaml:"db"`

	// KeyPrefix namespaces this library's records
	KeyPrefix string `yaml:"key_prefix"`

	// OpTimeout bounds individual store operations
	OpTimeout time.Duration `yaml:"op_timeout"`
}

// DefaultScalarStoreConfig returns default scalar store configuration
func DefaultScalarStoreConfig() ScalarStoreConfig {
	return ScalarStoreConfig{
		Enabled:   false,
		Addr:      "localhost:6379",
		KeyPrefix: "market-sync:last-good:",
		OpTimeout: 2 * time.Second,
	}
}
