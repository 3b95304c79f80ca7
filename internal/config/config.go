// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	DataDir    string
	LogLevel   string
	ShowCharts bool
}

// Default values
const (
	defaultDataDir    = "."
	defaultLogLevel   = "warn"
	defaultShowCharts = true
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		DataDir:    getEnvString("BIKESHARE_DATA_DIR", defaultDataDir),
		LogLevel:   getEnvString("BIKESHARE_LOG_LEVEL", defaultLogLevel),
		ShowCharts: getEnvBool("BIKESHARE_SHOW_CHARTS", defaultShowCharts),
	}

	if err := checkDir(cfg.DataDir); err != nil {
		return nil, err
	}

	return cfg, nil
}

// CityPath returns the data file path for a supported city.
func (c *Config) CityPath(city string) (string, bool) {
	name, ok := CityFiles[city]
	if !ok {
		return "", false
	}
	return filepath.Join(c.DataDir, name), true
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "bikeshare", ".env"),
			filepath.Join(home, ".bikeshare", ".env"),
		)
	}

	return paths
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
// Accepts the values understood by strconv.ParseBool.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// checkDir verifies that path exists and is a directory.
func checkDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("data directory %q: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data directory %q is not a directory", path)
	}
	return nil
}
