package config

import "time"

// Config holds runtime settings for the back-office client.
//
// Fields:
//   - BackendBaseURL: base URL of the marketplace REST API.
//   - DatabasePath: sqlite file holding persisted session markers.
//   - RevalidationInterval: how often the session guard re-checks the token.
//   - HTTPTimeout: per-request timeout for backend calls.
type Config struct {
	BackendBaseURL       string
	DatabasePath         string
	RevalidationInterval time.Duration
	HTTPTimeout          time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendBaseURL = "http://127.0.0.1:8080"
	c.DatabasePath = "backoffice.db"
	c.RevalidationInterval = 60 * time.Second
	c.HTTPTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
