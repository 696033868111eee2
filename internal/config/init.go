package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the config directory and environment prefix
const AppName = "aiwire"

// DefaultPath returns where the config file lives when --config is not given:
// $XDG_CONFIG_HOME/aiwire/config.yaml, else ~/.config/aiwire/config.yaml.
func DefaultPath() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, AppName, "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName, "config.yaml"), nil
}

// EnsureConfigExists creates a config file with template if it doesn't exist.
// It reports whether a file was written.
func EnsureConfigExists(configPath string) (bool, error) {
	if _, err := os.Stat(configPath); err == nil {
		return false, nil
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	// The file may end up holding credentials
	if err := os.WriteFile(configPath, []byte(configTemplate), 0o600); err != nil {
		return false, fmt.Errorf("failed to write config template: %w", err)
	}

	return true, nil
}
