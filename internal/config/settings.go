package config

import (
	"fmt"

	"github.com/watchfire-io/widgethost/internal/models"
)

// LoadSettings loads host settings from settings.yaml.
// If the file doesn't exist, returns default settings.
func LoadSettings(p Paths) (*models.Settings, error) {
	settings, err := LoadYAMLOrDefault(p.SettingsFile(), models.NewSettings)
	if err != nil {
		return nil, err
	}
	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", SettingsFileName, err)
	}
	return settings, nil
}

// SaveSettings saves host settings to settings.yaml.
func SaveSettings(p Paths, settings *models.Settings) error {
	return SaveYAML(p.SettingsFile(), settings)
}

// ValidateSettings checks settings for values the host cannot run with.
func ValidateSettings(s *models.Settings) error {
	if s.Version > 1 {
		return fmt.Errorf("unsupported settings version %d", s.Version)
	}
	if s.WidgetsDir == "" {
		return fmt.Errorf("widgets_dir cannot be empty")
	}
	return nil
}
