package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults resolves the application's default paths. DMS_CONFIG_PATH and
// DMS_HOME take precedence when set; otherwise the config lives at
// ~/.config/dms.toml and data under the XDG-style ~/.local/share/dms.
// The home directory is only consulted when an override is missing.
func GetDefaults() (map[string]string, error) {
	configPath := os.Getenv("DMS_CONFIG_PATH")
	baseDir := os.Getenv("DMS_HOME")

	if configPath == "" || baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		if configPath == "" {
			configPath = filepath.Join(home, ".config", "dms.toml")
		}
		if baseDir == "" {
			baseDir = filepath.Join(home, ".local", "share", "dms")
		}
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}
