package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from environment variables through caarlos0/env,
// following the `env` and `envPrefix` tags declared on [StructuredConfig].
// Unset variables leave their fields at zero so later config layers can
// fill them.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}
