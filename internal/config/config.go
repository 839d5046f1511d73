package config

import (
	"os"
	"strconv"

	"datareport/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Upload   UploadConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds optional report-archive database settings. An empty
// URL disables archiving entirely.
type DatabaseConfig struct {
	URL     string
	Enabled bool
}

// UploadConfig holds upload handling limits
type UploadConfig struct {
	MaxFileSizeMB int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Database: loadDatabaseConfig(),
		Upload: UploadConfig{
			MaxFileSizeMB: getEnvIntOrDefault("MAX_UPLOAD_MB", 50),
		},
	}

	if config.Upload.MaxFileSizeMB <= 0 {
		return nil, errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}

	return config, nil
}

func loadDatabaseConfig() DatabaseConfig {
	url := os.Getenv("DATABASE_URL")
	return DatabaseConfig{
		URL:     url,
		Enabled: url != "",
	}
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
