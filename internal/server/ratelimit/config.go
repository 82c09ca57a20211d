package ratelimit

import (
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	EndpointConfigs []EndpointConfig
}

// DefaultLimiterConfig returns the baseline limiter configuration.
func DefaultLimiterConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    300,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// NewConfig builds a limiter configuration from service settings. The rps and
// burst values override the default per-minute limit for unmatched routes.
func NewConfig(enabled bool, rps float64, burst int) *Config {
	cfg := DefaultLimiterConfig()
	cfg.Enabled = enabled
	if rps > 0 {
		cfg.DefaultLimit = int(rps * 60)
	}
	if burst > 0 {
		for i := range cfg.EndpointConfigs {
			if cfg.EndpointConfigs[i].Burst > burst {
				cfg.EndpointConfigs[i].Burst = burst
			}
		}
	}
	return cfg
}

// DefaultEndpointConfigs returns the per-route limits.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Scoring endpoints carry the heaviest per-request work
		{Path: "/api/score", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/api/snapshot", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},

		// Inbound ATS webhook; upstream systems can spike
		{Path: "/api/ats/webhook", Method: "POST", Limit: 300, Window: time.Minute, Burst: 50},

		// Operational endpoints
		{Path: "/api/ats/dlq/retry", Method: "POST", Limit: 10, Window: time.Minute, Burst: 2},
		{Path: "/api/track", Method: "POST", Limit: 600, Window: time.Minute, Burst: 100},

		// Health check (unlimited) is special-cased in the matcher
	}
}
