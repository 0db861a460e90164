// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.taskmatrix/taskmatrix.toml or OS-specific config directory)
// 3. Project config file (taskmatrix.toml or .taskmatrix.toml in the working directory)
// 4. Environment variables (TASKMATRIX_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.taskmatrix/taskmatrix.toml (preferred)
// - Windows: %APPDATA%\taskmatrix\taskmatrix.toml
// - macOS: ~/Library/Application Support/taskmatrix/taskmatrix.toml
// - Linux/BSD: $XDG_CONFIG_HOME/taskmatrix/taskmatrix.toml or ~/.config/taskmatrix/taskmatrix.toml
//
// TASKMATRIX_CONFIG points at a user config file explicitly and skips the
// lookup above.
package config
