package config

import "time"

// UpstreamConfig represents configuration for the HTTP price feed clients
type UpstreamConfig struct {
	// BaseURL is the default price feed endpoint
	BaseURL string `yaml:"base_url"`

	// SecondaryBaseURL is the independently configured secondary feed
	// used for assets whose canonical pricing source differs from the
	// default one
	SecondaryBaseURL string `yaml:"secondary_base_url"`

	// MaxRetries is the number of attempts per request
	MaxRetries int `yaml:"max_retries"`

	// BaseBackoff is the backoff before the first retry; subsequent
	// retries back off exponentially with jitter
	BaseBackoff time.Duration `yaml:"base_backoff"`

	// ConnectionTimeout bounds connection establishment
	ConnectionTimeout time.Duration `yaml:"connection_timeout"`

	// RequestTimeout bounds the whole request including response read
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// RateLimitPerMinute caps requests to each feed; 0 disables limiting
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`

	// Burst for the rate limiter; defaults to a tenth of the per-minute
	// limit when unset
	Burst int `yaml:"burst"`
}

// DefaultUpstreamConfig returns default upstream client configuration
func DefaultUpstreamConfig() UpstreamConfig {
	return UpstreamConfig{
		BaseURL:            "https://api.coingecko.com/api/v3",
		SecondaryBaseURL:   "https://safewallet.anwang.com/v1",
		MaxRetries:         3,
		BaseBackoff:        1000 * time.Millisecond,
		ConnectionTimeout:  10 * time.Second,
		RequestTimeout:     30 * time.Second,
		RateLimitPerMinute: 30,
	}
}
