package config

import (
	"flag"
	"strings"
)

// parseFlags defines the global flags on fs, parses args and applies the
// flags that were set explicitly.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("todo", flag.ContinueOnError)
	}

	title := fs.String("title", cfg.Title, "Screen title")
	notifications := fs.Bool("notifications", cfg.Notifications, "Show a status message after each operation")
	idStrategy := fs.String("id-strategy", cfg.IDStrategy, "Task id strategy (counter, uuid)")
	logDir := fs.String("log-dir", cfg.LogDir, "Session log directory")
	logLevel := fs.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	logTimestamps := fs.Bool("log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	logCaller := fs.Bool("log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		field := strings.ReplaceAll(f.Name, "-", "_")
		switch f.Name {
		case "title":
			cfg.Title = *title
		case "notifications":
			cfg.Notifications = *notifications
		case "id-strategy":
			cfg.IDStrategy = *idStrategy
		case "log-dir":
			cfg.LogDir = *logDir
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-format":
			cfg.LogFormat = *logFormat
		case "log-timestamps":
			cfg.LogTimestamps = *logTimestamps
		case "log-caller":
			cfg.LogCaller = *logCaller
		default:
			return
		}
		sources[field] = SourceFlag
	})

	return nil
}
