package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultFileName = "samplehost.yaml"

	dirMode  = 0o755
	fileMode = 0o644
)

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	base := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME"))
	if base == "" {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		if dir, err := os.UserConfigDir(); err == nil && strings.TrimSpace(dir) != "" {
			base = dir
		}
	}
	if base == "" {
		base = "."
	}
	return filepath.Join(base, "samplehost", DefaultFileName)
}

// resolvePath anchors a relative path at the config file's directory.
func resolvePath(configPath, value string) string {
	value = strings.TrimSpace(value)
	if value == "" || filepath.IsAbs(value) {
		return value
	}
	return filepath.Join(filepath.Dir(configPath), value)
}
