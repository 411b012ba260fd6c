package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays Config fields from AUTHGATE_* environment variables (see
// the env tags on Config). Variables that are not set leave the current
// values untouched, so defaults survive. Duration variables accept the usual
// time.ParseDuration forms, e.g. "15m" or "4320h".
//
// A malformed variable panics, consistent with how a broken JSON config file
// is treated.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(fmt.Errorf("parse env: %w", err))
	}
}
