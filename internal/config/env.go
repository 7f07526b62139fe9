package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ApplyEnv overrides path settings from CARDGEN_* environment variables.
// Unset variables leave the loaded values untouched.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(&cfg.Paths); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
