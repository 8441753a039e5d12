package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays DECOLOG_* environment variables onto cfg. Variables that
// are not set leave the current values untouched, so the env layer composes
// with defaults and the JSON file. The service deploys with env-provided
// secrets, which is why this layer sits between the file and the flags.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
