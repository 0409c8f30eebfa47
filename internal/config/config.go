package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
}

// Default values.
const (
	DefaultTitle         = "To-Do List"
	DefaultIDStrategy    = "counter"
	DefaultNotifications = true
	DefaultLogDir        = "~/.todo/logs"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
)

// Config holds the full configuration for todo.
type Config struct {
	// Screen
	Title         string `toml:"title"`
	Notifications bool   `toml:"notifications"` // Show status messages after each operation

	// Task ids: "counter" or "uuid"
	IDStrategy string `toml:"id_strategy"`

	// Logging configuration
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"title",
		"notifications",
		"id_strategy",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.Title = DefaultTitle
	cfg.Notifications = DefaultNotifications
	cfg.IDStrategy = DefaultIDStrategy
	cfg.LogDir = DefaultLogDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
}

// Default returns a config holding only the built-in defaults.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("title: must not be empty")
	}
	switch c.IDStrategy {
	case "counter", "uuid":
	default:
		return fmt.Errorf("id_strategy: invalid value %q (expected counter|uuid)", c.IDStrategy)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level: invalid value %q (expected debug|info|warn|error)", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log_format: invalid value %q (expected text|json|logfmt)", c.LogFormat)
	}
	return nil
}

// Value returns the display value of a field named as in configFields.
func (c *Config) Value(field string) string {
	switch field {
	case "title":
		return c.Title
	case "notifications":
		return fmt.Sprint(c.Notifications)
	case "id_strategy":
		return c.IDStrategy
	case "log_dir":
		return c.LogDir
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return fmt.Sprint(c.LogTimestamps)
	case "log_caller":
		return fmt.Sprint(c.LogCaller)
	}
	return ""
}

// Fields returns the configurable field names in display order.
func Fields() []string {
	return configFields()
}

// finalizeConfig normalizes values and validates the result.
func finalizeConfig(cfg *Config) error {
	cfg.LogDir = expandPath(cfg.LogDir)
	cfg.IDStrategy = strings.ToLower(strings.TrimSpace(cfg.IDStrategy))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	return cfg.Validate()
}

// parseBool accepts the strconv.ParseBool forms plus yes/no and on/off.
func parseBool(s string) (bool, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	default:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("invalid boolean %q", s)
		}
		return b, nil
	}
}
