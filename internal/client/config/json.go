package config

import (
	"encoding/json"
	"os"

	"github.com/decolog/decolog/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify durations either as
// strings like "10s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	DBPath        string         `json:"db_path"`
	ServerBaseURL string         `json:"server_base_url"`
	HTTPTimeout   timex.Duration `json:"http_timeout"`
	SyncDelay     timex.Duration `json:"sync_delay"`
}

// parseJson overlays cfg with values loaded from the JSON file at path.
//
// Behavior:
//   - An empty path means no config file was given; cfg is left unchanged.
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies set fields into the provided Config; fields the file omits keep
//     their current (default) values.
//   - Panics on read or unmarshal errors (caller should recover if desired).
func parseJson(cfg *Config, path string) {
	if path == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.HTTPTimeout.Duration != 0 {
		cfg.HTTPTimeout = jc.HTTPTimeout.Duration
	}
	if jc.SyncDelay.Duration != 0 {
		cfg.SyncDelay = jc.SyncDelay.Duration
	}
}
