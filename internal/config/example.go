package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todo configuration file
# Every value can be overridden by TODO_* environment variables or CLI flags.

# Title shown at the top of the screen
title = "To-Do List"

# Show a status message after add, delete and clear
notifications = true

# Task id strategy: "counter" (1, 2, 3, ...) or "uuid" (UUIDv7)
id_strategy = "counter"

# Session log directory (supports ~ expansion and %VAR% on Windows)
log_dir = "~/.todo/logs"

# Logging: level is debug|info|warn|error, format is text|json|logfmt
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
