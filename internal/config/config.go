// Package config loads and saves user preferences from
// ~/.daybook/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SMTP holds the outgoing mail transport settings. An empty host
// disables real sending; reports then go to the outbox directory.
type SMTP struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	From     string `yaml:"from" json:"from"`
}

// Config holds user preferences.
type Config struct {
	DataDir       string `yaml:"data_dir" json:"data_dir"`             // Task/category/routine JSON files
	ConfirmDelete bool   `yaml:"confirm_delete" json:"confirm_delete"` // Require confirmation for delete

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`
	LogFile    string `yaml:"log_file" json:"log_file"`
	LogConsole bool   `yaml:"log_console" json:"log_console"`

	SMTP SMTP `yaml:"smtp" json:"smtp"`
}

// DefaultConfig returns default settings.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	dataDir := "data"
	logPath := ""
	if home != "" {
		dataDir = filepath.Join(home, ".daybook", "data")
		logPath = filepath.Join(home, ".daybook", "logs", "daybook.log")
	}

	return &Config{
		DataDir:       getEnv("DAYBOOK_DATA_DIR", dataDir),
		ConfirmDelete: true,
		LogLevel:      getEnv("DAYBOOK_LOG_LEVEL", "INFO"),
		LogFile:       getEnv("DAYBOOK_LOG_FILE", logPath),
		LogConsole:    getEnv("DAYBOOK_LOG_CONSOLE", "false") == "true",
		SMTP: SMTP{
			Port: 587,
		},
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".daybook", "config.yaml"), nil
}

// Load loads config from ~/.daybook/config.yaml, returning defaults
// when no file exists yet.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves config to ~/.daybook/config.yaml.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
