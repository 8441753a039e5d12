// Package config loads runtime configuration for the DecoLog CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) whose path the cobra root command
//     collects via --config.
//  3. Command-line overrides (--db, --server, --timeout), applied by the
//     cobra root command on top of the loaded Config.
//
// The flag layer lives in the cli package rather than here: with a
// subcommand tree every flag must be registered with cobra, or argument
// parsing for the subcommands breaks.
//
// # JSON schema
//
// The JSON loader uses timex.Duration for durations, so values can be either
// strings like "10s" or integer nanoseconds:
//
//	{
//	  "db_path": "dives.db",
//	  "server_base_url": "http://127.0.0.1:8080",
//	  "http_timeout": "10s",
//	  "sync_delay": "2s"
//	}
//
// The stub sync delay has no flag; set it via JSON when the default is
// too short for demos.
//
// Primary API
//
//   - type Config                         — holds DBPath, ServerBaseURL, HTTPTimeout, SyncDelay
//   - func LoadConfig(jsonPath) *Config   — builds Config by applying defaults, then the JSON file
//   - func (*Config) LoadDefaults()       — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
