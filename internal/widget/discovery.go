// Package widget implements the widget lifecycle: discovery, persisted state,
// window management and shutdown.
package widget

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/watchfire-io/widgethost/internal/config"
	"github.com/watchfire-io/widgethost/internal/models"
)

// Discover reads every widget folder under dir, in directory listing order.
// It fails on the first invalid folder and returns no widgets in that case.
func Discover(dir string) ([]models.WidgetDefinition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read widgets directory: %w", err)
	}

	var defs []models.WidgetDefinition
	seen := make(map[models.WidgetName]string)

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}

		folder, err := filepath.Abs(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}

		def, err := LoadDefinition(folder)
		if err != nil {
			return nil, err
		}

		if prev, ok := seen[def.Name]; ok {
			return nil, fmt.Errorf("%w: %q in %s and %s", ErrDuplicateWidget, def.Name, prev, folder)
		}
		seen[def.Name] = folder

		defs = append(defs, def)
	}

	return defs, nil
}

// LoadDefinition reads a single widget folder.
func LoadDefinition(folder string) (models.WidgetDefinition, error) {
	data, err := os.ReadFile(config.MetadataFile(folder))
	if err != nil {
		return models.WidgetDefinition{}, fmt.Errorf("%w: %s: %v", ErrInvalidMetadata, folder, err)
	}

	var meta models.Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return models.WidgetDefinition{}, fmt.Errorf("%w: %s: %v", ErrInvalidMetadata, folder, err)
	}

	if meta.Name == "" {
		return models.WidgetDefinition{}, fmt.Errorf("%w: %s: name is empty", ErrInvalidMetadata, folder)
	}
	if meta.Width <= 0 || meta.Height <= 0 {
		return models.WidgetDefinition{}, fmt.Errorf("%w: %s: size %dx%d", ErrInvalidMetadata, folder, meta.Width, meta.Height)
	}

	content := config.ContentFile(folder)
	info, err := os.Stat(content)
	if err != nil || info.IsDir() {
		return models.WidgetDefinition{}, fmt.Errorf("%w: %s", ErrMissingContent, content)
	}

	return models.WidgetDefinition{
		Name:    models.WidgetName(meta.Name),
		Width:   meta.Width,
		Height:  meta.Height,
		Folder:  folder,
		Content: content,
	}, nil
}
