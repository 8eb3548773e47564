// Package twelvedata provides a client for the Twelve Data market API.
package twelvedata

import (
	"time"

	"etf_advisor/internal/platform/config"
)

// Config holds configuration for the Twelve Data API client.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// FromMarketConfig maps application config onto the client config.
func FromMarketConfig(c config.MarketConfig) Config {
	return Config{APIKey: c.APIKey, BaseURL: c.BaseURL, Timeout: c.Timeout}
}

// Enabled reports whether an API key is configured.
func (c Config) Enabled() bool {
	return c.APIKey != ""
}
