package cli

import (
	envparse "github.com/caarlos0/env/v11"
)

// baseEnv defines root CLI defaults sourced from NOTIONSYNC_* env vars.
type baseEnv struct {
	// LogLevel is the logging level from NOTIONSYNC_LOG_LEVEL.
	LogLevel string `env:"NOTIONSYNC_LOG_LEVEL"`
	// EnvFiles is a comma-separated .env file list from NOTIONSYNC_ENV_FILES.
	EnvFiles []string `env:"NOTIONSYNC_ENV_FILES" envSeparator:","`
}

// parseEnv fills target from NOTIONSYNC_* env vars via caarlos0/env.
func parseEnv(target interface{}) error {
	return envparse.Parse(target)
}
