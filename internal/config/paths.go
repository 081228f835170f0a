package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultConfigFile is the config file looked up in the working directory.
const DefaultConfigFile = "config.yaml"

// DefaultEnvFile is the dotenv file pre-loaded from the working directory.
const DefaultEnvFile = ".env"

// GetConfigFile returns COURSE_CONFIG when set, else DefaultConfigFile.
func GetConfigFile() string {
	return ResolveConfigPath("").Value
}

// ExpandPath replaces a leading "~" or "~/" with the user's home directory.
// "~user" forms are returned unchanged.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}

// ConfigFileExists reports whether the config file (GetConfigFile when
// configFile is empty) exists after ~ expansion.
func ConfigFileExists(configFile string) (bool, error) {
	if configFile == "" {
		configFile = GetConfigFile()
	}

	path, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	switch _, err := os.Stat(path); {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
