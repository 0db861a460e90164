package config

import (
	"flag"
)

// flagToSource maps flag names to config field names.
var flagToSource = map[string]string{
	"data":           "data_file",
	"schema":         "schema_file",
	"log-dir":        "log_dir",
	"strict":         "strict_schema",
	"watch":          "watch",
	"on-change":      "on_change",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines the global flags on fs, bound to cfg, and parses args.
// Defaults shown in usage reflect the values loaded so far. If sources is
// non-nil, explicitly set flags are recorded there.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("taskmatrix", flag.ContinueOnError)
	}

	// Paths
	fs.StringVar(&cfg.DataFile, "data", cfg.DataFile, "Path to task file")
	fs.StringVar(&cfg.SchemaFile, "schema", cfg.SchemaFile, "Path to a JSON Schema overriding the built-in one")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Log directory")

	// Task file handling
	fs.BoolVar(&cfg.StrictSchema, "strict", cfg.StrictSchema, "Refuse to open a task file that fails schema validation")
	fs.BoolVar(&cfg.Watch, "watch", cfg.Watch, "Reload the board when the task file changes on disk")

	// Hooks
	fs.StringVar(&cfg.OnChange, "on-change", cfg.OnChange, "Command run after taskmatrix changes the task file")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error, fatal)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log output")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller location in log output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if fieldName, ok := flagToSource[f.Name]; ok {
				sources[fieldName] = SourceFlag
			}
		})
	}

	return nil
}
