package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigPathEnv overrides the config file location.
const ConfigPathEnv = "PHASEWATCH_CONFIG"

// ConfigDir returns the OS-standard configuration directory.
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// ConfigPath resolves the config file of appName. The PHASEWATCH_CONFIG
// environment variable wins over the per-user location.
func ConfigPath(appName string) (string, error) {
	if override := os.Getenv(ConfigPathEnv); override != "" {
		return override, nil
	}
	configDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName, "config.yaml"), nil
}
