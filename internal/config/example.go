package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# taskmatrix configuration file
# Values can be overridden by environment variables or CLI flags

# Task file (supports ~ expansion and %VAR% on Windows)
# Defaults to the per-user data directory, e.g. ~/.local/share/taskmatrix/tasks.json
# data_file = "~/tasks.json"

# JSON Schema used by "taskmatrix doctor" and strict mode (built-in when empty)
# schema_file = ""

# Refuse to open a task file that fails schema validation
strict_schema = false

# Reload the board when the task file is changed by another program
watch = true

# Command run after taskmatrix changes the task file, e.g. to sync it.
# It receives the event name, the task id (empty for board sessions) and
# the task file path as arguments.
# on_change = "~/bin/sync-tasks"

# Log directory (one file per run)
# log_dir = "~/.local/share/taskmatrix/logs"

# Logging: debug, info, warn, error, fatal
log_level = "info"

# Log format: text, json, logfmt
log_format = "text"

log_timestamps = true
log_caller = false
`
}
