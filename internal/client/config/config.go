package config

import "time"

// Config holds runtime settings for the DecoLog CLI.
//
// Fields:
//   - DBPath: filesystem path of the local SQLite dive log.
//   - ServerBaseURL: base URL of the license service.
//   - HTTPTimeout: per-request timeout against the license service.
//   - SyncDelay: duration of the stub sync round trip used while the device
//     has no license token.
//
// Units: HTTPTimeout and SyncDelay are time.Durations (e.g., 10*time.Second).
type Config struct {
	DBPath        string
	ServerBaseURL string
	HTTPTimeout   time.Duration
	SyncDelay     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DBPath = "dives.db"
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.HTTPTimeout = 10 * time.Second
	c.SyncDelay = 2 * time.Second
}

// LoadConfig constructs a Config with defaults applied, then overlays values
// from the JSON file at jsonPath when it is non-empty. Command-line overrides
// are owned by the cobra root command and applied on top of the result.
func LoadConfig(jsonPath string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, jsonPath)
	return cfg
}
