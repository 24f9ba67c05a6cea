package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// ConfigDirName is the root directory name for mcskin configuration
	ConfigDirName = "mcskin"

	// SkinsSubdir holds downloaded skin images
	SkinsSubdir = "skins"

	// ConfigFileName is the name of the YAML config file
	ConfigFileName = "config.yaml"
)

// GetConfigDir returns the path to the mcskin configuration directory.
// It honours XDG_CONFIG_HOME and defaults to ~/.config/mcskin/.
func GetConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configHome = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configHome, ConfigDirName), nil
}

// GetConfigPath returns the path to the main configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// GetSkinsDir returns the default directory for downloaded skins.
func GetSkinsDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, SkinsSubdir), nil
}

// GetSkinPath returns the file a player's skin is saved to inside dir.
// An empty dir selects GetSkinsDir.
func GetSkinPath(dir, username string) (string, error) {
	if username == "" {
		return "", fmt.Errorf("username cannot be empty")
	}
	if strings.ContainsAny(username, `/\`) || strings.Contains(username, "..") {
		return "", fmt.Errorf("username cannot contain path separators: %q", username)
	}

	if dir == "" {
		skinsDir, err := GetSkinsDir()
		if err != nil {
			return "", err
		}
		dir = skinsDir
	}

	expanded, err := ExpandHome(dir)
	if err != nil {
		return "", err
	}

	return filepath.Join(expanded, username+".png"), nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}

// EnsureDir ensures that a directory exists, creating it if necessary.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to ensure directory %s: %w", path, err)
	}
	return nil
}
