// Package appdir resolves the per-user directories taskmatrix reads and
// writes.
package appdir

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	// Name is the directory name used under each platform base directory.
	Name = "taskmatrix"

	// DataFile is the task file name inside the data directory.
	DataFile = "tasks.json"

	// ConfigFile is the config file name.
	ConfigFile = "taskmatrix.toml"

	// LogsDir is the log directory name inside the data directory.
	LogsDir = "logs"
)

// DataDir returns the per-user application data directory:
//   - Windows: %LOCALAPPDATA%\taskmatrix
//   - macOS: ~/Library/Application Support/taskmatrix
//   - Linux/BSD: $XDG_DATA_HOME/taskmatrix or ~/.local/share/taskmatrix
//
// It falls back to ./.taskmatrix when no base directory can be determined.
func DataDir() string {
	if base := dataBase(runtime.GOOS); base != "" {
		return filepath.Join(base, Name)
	}
	return "." + Name
}

// DataPath returns the default task file location.
func DataPath() string {
	return filepath.Join(DataDir(), DataFile)
}

// LogDir returns the default log directory.
func LogDir() string {
	return filepath.Join(DataDir(), LogsDir)
}

// UserConfigPaths returns candidate user config files in lookup order:
// ~/.taskmatrix/taskmatrix.toml first, then the OS config directory.
func UserConfigPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, "."+Name, ConfigFile))
	}
	if cfgDir := configBase(runtime.GOOS); cfgDir != "" {
		paths = append(paths, filepath.Join(cfgDir, Name, ConfigFile))
	}
	return paths
}

// ProjectConfigNames returns config file names looked up in the working
// directory.
func ProjectConfigNames() []string {
	return []string{ConfigFile, "." + ConfigFile}
}

// ExpandPath expands environment variables and a leading ~ in a configured
// path. On Windows it also expands %VAR% references and a ~\ prefix;
// a %VAR% naming an unset variable is left as written.
func ExpandPath(p string) string {
	return expandPath(p, runtime.GOOS)
}

func expandPath(p, goos string) string {
	if p == "" {
		return ""
	}
	p = os.ExpandEnv(p)
	if goos == "windows" {
		p = expandPercentVars(p)
	}
	rest, ok := cutHome(p, goos)
	if !ok {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if rest == "" {
		return home
	}
	return filepath.Join(home, rest)
}

// cutHome reports whether p starts at the home directory and returns the
// remainder.
func cutHome(p, goos string) (string, bool) {
	switch {
	case p == "~":
		return "", true
	case strings.HasPrefix(p, "~/"):
		return p[2:], true
	case goos == "windows" && strings.HasPrefix(p, `~\`):
		return p[2:], true
	}
	return "", false
}

// expandPercentVars replaces each %NAME% with the value of NAME. A lone % or
// a reference to an unset variable is kept.
func expandPercentVars(p string) string {
	var b strings.Builder
	for {
		start := strings.IndexByte(p, '%')
		if start < 0 {
			break
		}
		end := strings.IndexByte(p[start+1:], '%')
		if end < 0 {
			break
		}
		end += start + 1
		b.WriteString(p[:start])
		if name := p[start+1 : end]; name != "" {
			if val, ok := os.LookupEnv(name); ok {
				b.WriteString(val)
				p = p[end+1:]
				continue
			}
		}
		// Keep the text up to the closing % and rescan from it.
		b.WriteString(p[start:end])
		p = p[end:]
	}
	b.WriteString(p)
	return b.String()
}

func dataBase(goos string) string {
	switch goos {
	case "windows":
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return local
		}
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return appdata
		}
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return xdg
		}
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".local", "share")
		}
	}
	return ""
}

func configBase(goos string) string {
	switch goos {
	case "windows":
		// On Windows, use %APPDATA%
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return appdata
		}
	case "darwin":
		// On macOS, use ~/Library/Application Support
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	default:
		// On Linux/BSD, respect XDG_CONFIG_HOME or use ~/.config
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}
