package config

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
}

// Default values.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for taskmatrix.
type Config struct {
	// Paths
	DataFile   string `toml:"data_file"`
	SchemaFile string `toml:"schema_file"` // Optional; the built-in schema is used when empty
	LogDir     string `toml:"log_dir"`

	// Task file handling
	StrictSchema bool `toml:"strict_schema"` // Refuse to open a file that fails schema validation
	Watch        bool `toml:"watch"`         // Reload the board when the file changes on disk

	// Hooks
	OnChange string `toml:"on_change"` // Command run after the task file is changed by taskmatrix

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Config files that were applied (computed)
	UserConfigFile    string `toml:"-"`
	ProjectConfigFile string `toml:"-"`
}

// GetConfigFile returns the active config file path (project or user).
func (cws *ConfigWithSources) GetConfigFile() string {
	if cws == nil || cws.Config == nil {
		return ""
	}
	if cws.Config.ProjectConfigFile != "" {
		return cws.Config.ProjectConfigFile
	}
	return cws.Config.UserConfigFile
}
