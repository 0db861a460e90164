package config

import (
	"os"

	"github.com/nibzard/taskmatrix/internal/appdir"
)

// findProjectConfigFile looks for a config file in the current directory.
func findProjectConfigFile() string {
	for _, name := range appdir.ProjectConfigNames() {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file. TASKMATRIX_CONFIG
// wins when set; otherwise ~/.taskmatrix/taskmatrix.toml is checked first,
// then the OS-specific config directory.
func findUserConfigFile() string {
	if v := os.Getenv("TASKMATRIX_CONFIG"); v != "" {
		return appdir.ExpandPath(v)
	}
	for _, p := range appdir.UserConfigPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.DataFile = appdir.DataPath()
	cfg.SchemaFile = ""
	cfg.LogDir = appdir.LogDir()
	cfg.StrictSchema = false
	cfg.Watch = true

	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = true
	cfg.LogCaller = false
}
