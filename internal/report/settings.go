package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/daybook-app/daybook/internal/logger"
	"github.com/daybook-app/daybook/internal/model"
)

const settingsFile = "email_settings.json"

// Settings are the saved defaults for ad-hoc report sends.
type Settings struct {
	Recipients         []string             `json:"recipients"`
	CustomTitle        string               `json:"custom_title"`
	ContentTypes       []string             `json:"content_types"`
	Period             string               `json:"period"`
	SelectedCategories model.CategoryFilter `json:"selected_categories"`
}

// DefaultSettings returns settings for a full report of today.
func DefaultSettings() Settings {
	return Settings{
		ContentTypes: []string{model.ContentAll},
		Period:       "today",
	}
}

// LoadSettings reads the saved report settings from the data dir,
// returning defaults when the file is missing or unreadable.
func LoadSettings(dataDir string) Settings {
	path := filepath.Join(dataDir, settingsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read report settings, using defaults",
				logger.F("path", path), logger.F("error", err))
		}
		return DefaultSettings()
	}

	s := DefaultSettings()
	if err := json.Unmarshal(data, &s); err != nil {
		logger.Warn("Failed to parse report settings, using defaults",
			logger.F("path", path), logger.F("error", err))
		return DefaultSettings()
	}
	return s
}

// SaveSettings writes the report settings to the data dir.
func SaveSettings(dataDir string, s Settings) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report settings: %w", err)
	}
	path := filepath.Join(dataDir, settingsFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report settings: %w", err)
	}
	return nil
}
