// Package config provides configuration loading and validation for the
// scoring service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the service configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or environment
// variables.
type Config struct {
	// Server
	Port            int `json:"port,omitempty"`             // HTTP listen port
	ShutdownTimeout int `json:"shutdown_timeout,omitempty"` // Graceful shutdown window in seconds

	// Downstream
	DatabaseURL   string `json:"database_url,omitempty"`    // PostgreSQL connection URL
	ATSWebhookURL string `json:"ats_webhook_url,omitempty"` // Downstream ATS webhook endpoint

	// Rate limiting. Disabled is the inverted flag so the zero value keeps
	// limiting on; JSON merging cannot distinguish false from unset.
	RateLimitDisabled bool    `json:"rate_limit_disabled,omitempty"` // Disable per-IP rate limiting
	RateLimitRPS      float64 `json:"rate_limit_rps,omitempty"`      // Default refill rate per second
	RateLimitBurst    int     `json:"rate_limit_burst,omitempty"`    // Default bucket capacity

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// DefaultConfig returns the baseline configuration
func DefaultConfig() Config {
	return Config{
		Port:            8080,
		ShutdownTimeout: 10,
		RateLimitRPS:    5,
		RateLimitBurst:  10,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills empty fields from environment variables. The database URL and
// webhook URL commonly arrive via the environment in deployed setups.
func (c *Config) FromEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.ATSWebhookURL == "" {
		c.ATSWebhookURL = os.Getenv("ATS_WEBHOOK_URL")
	}
	if c.Port == 0 {
		if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil && port > 0 {
			c.Port = port
		}
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("config error: 'shutdown_timeout' must be non-negative")
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("config error: 'rate_limit_rps' must be non-negative")
	}
	if c.RateLimitBurst < 0 {
		return fmt.Errorf("config error: 'rate_limit_burst' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-value fields filled from
// defaults. CLI flags should always win for bools, so bool fields do not merge.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.ShutdownTimeout == 0 {
		result.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ATSWebhookURL == "" {
		result.ATSWebhookURL = defaults.ATSWebhookURL
	}
	if result.RateLimitRPS == 0 {
		result.RateLimitRPS = defaults.RateLimitRPS
	}
	if result.RateLimitBurst == 0 {
		result.RateLimitBurst = defaults.RateLimitBurst
	}

	return result
}
