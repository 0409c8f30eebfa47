package config

import (
	"errors"
	"fmt"
	"os"
)

// envPrefix is prepended to the upper-cased field name, e.g. TODO_LOG_LEVEL.
const envPrefix = "TODO_"

// loadFromEnv overrides config from environment variables and updates
// source tracking. Unparseable booleans are rejected.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	setString := func(field string, target *string) {
		if v := os.Getenv(envName(field)); v != "" {
			*target = v
			sources[field] = SourceEnv
		}
	}
	var errs []error
	setBool := func(field string, target *bool) {
		v := os.Getenv(envName(field))
		if v == "" {
			return
		}
		b, err := parseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", envName(field), err))
			return
		}
		*target = b
		sources[field] = SourceEnv
	}

	setString("title", &cfg.Title)
	setBool("notifications", &cfg.Notifications)
	setString("id_strategy", &cfg.IDStrategy)
	setString("log_dir", &cfg.LogDir)
	setString("log_level", &cfg.LogLevel)
	setString("log_format", &cfg.LogFormat)
	setBool("log_timestamps", &cfg.LogTimestamps)
	setBool("log_caller", &cfg.LogCaller)
	return errors.Join(errs...)
}

// envName returns the environment variable for a config field.
func envName(field string) string {
	b := []byte(envPrefix + field)
	for i := len(envPrefix); i < len(b); i++ {
		if b[i] >= 'a' && b[i] <= 'z' {
			b[i] -= 'a' - 'A'
		}
	}
	return string(b)
}
