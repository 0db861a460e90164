package config

import (
	"os"
	"strings"
)

// loadFromEnv overrides config from environment variables. If sources is
// non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("TASKMATRIX_DATA"); v != "" {
		cfg.DataFile = v
		set("data_file")
	}
	if v := os.Getenv("TASKMATRIX_SCHEMA"); v != "" {
		cfg.SchemaFile = v
		set("schema_file")
	}
	if v := os.Getenv("TASKMATRIX_LOG_DIR"); v != "" {
		cfg.LogDir = v
		set("log_dir")
	}
	if v := os.Getenv("TASKMATRIX_STRICT"); v != "" {
		cfg.StrictSchema = boolFromString(v)
		set("strict_schema")
	}
	if v := os.Getenv("TASKMATRIX_WATCH"); v != "" {
		cfg.Watch = boolFromString(v)
		set("watch")
	}
	if v := os.Getenv("TASKMATRIX_ON_CHANGE"); v != "" {
		cfg.OnChange = v
		set("on_change")
	}
	if v := os.Getenv("TASKMATRIX_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv("TASKMATRIX_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv("TASKMATRIX_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		set("log_timestamps")
	}
	if v := os.Getenv("TASKMATRIX_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		set("log_caller")
	}
}

// boolFromString parses a boolean from common string representations.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
