package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Folders   FolderConfig
	Templates TemplateConfig
	Batch     BatchConfig
	Log       LogConfig
}

// FolderConfig holds the batch driver's working folders
type FolderConfig struct {
	InputDir     string
	OutputDir    string
	ProcessedDir string
	FailedDir    string
}

// TemplateConfig holds template discovery configuration
type TemplateConfig struct {
	// SharedDir is the fallback template-definition folder. Empty disables
	// the fallback source. A config.json settings file may override this.
	SharedDir string
	// SettingsPath points at the config.json settings file (optional).
	SettingsPath string
}

// BatchConfig holds the poll worker configuration
type BatchConfig struct {
	PollInterval time.Duration
	MoveFiles    bool
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Folders: FolderConfig{
			InputDir:     getEnv("OCRMILL_INPUT_DIR", "input"),
			OutputDir:    getEnv("OCRMILL_OUTPUT_DIR", "output"),
			ProcessedDir: getEnv("OCRMILL_PROCESSED_DIR", "processed"),
			FailedDir:    getEnv("OCRMILL_FAILED_DIR", "failed"),
		},
		Templates: TemplateConfig{
			SharedDir:    getEnv("OCRMILL_TEMPLATE_DIR", ""),
			SettingsPath: getEnv("OCRMILL_CONFIG", "config.json"),
		},
		Batch: BatchConfig{
			PollInterval: getEnvAsDuration("OCRMILL_POLL_INTERVAL", 60*time.Second),
			MoveFiles:    getEnvAsBool("OCRMILL_MOVE_FILES", true),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

// Validate validates the loaded configuration for batch use.
func (c *Config) Validate() error {
	if c.Folders.InputDir == "" {
		return NewAppError("CONFIG_ERROR", "OCRMILL_INPUT_DIR is required", ErrInvalidInput)
	}
	if c.Folders.OutputDir == "" {
		return NewAppError("CONFIG_ERROR", "OCRMILL_OUTPUT_DIR is required", ErrInvalidInput)
	}
	if c.Batch.PollInterval <= 0 {
		return NewAppError("CONFIG_ERROR", "OCRMILL_POLL_INTERVAL must be positive", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Bare integers are treated as seconds, matching the original
		// poll_interval settings value.
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}
