// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

// File names beside the application.
const (
	EnabledFileName   = "enabled.json"
	PositionsFileName = "positions.json"
	SettingsFileName  = "settings.yaml"
	HostFileName      = "host.yaml"
)

// File names inside a widget folder.
const (
	MetadataFileName = "metadata.json"
	ContentFileName  = "index.html"
)

// Paths locates the files of one widget host installation.
type Paths struct {
	// Base is the directory the state files live in.
	Base string
}

// DefaultBaseDir returns the directory of the running executable.
func DefaultBaseDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// NewPaths returns paths rooted at dir, or at the executable's directory when
// dir is empty.
func NewPaths(dir string) (Paths, error) {
	if dir == "" {
		var err error
		dir, err = DefaultBaseDir()
		if err != nil {
			return Paths{}, err
		}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Paths{}, err
	}
	return Paths{Base: abs}, nil
}

// EnabledFile returns the path to enabled.json.
func (p Paths) EnabledFile() string {
	return filepath.Join(p.Base, EnabledFileName)
}

// PositionsFile returns the path to positions.json.
func (p Paths) PositionsFile() string {
	return filepath.Join(p.Base, PositionsFileName)
}

// SettingsFile returns the path to settings.yaml.
func (p Paths) SettingsFile() string {
	return filepath.Join(p.Base, SettingsFileName)
}

// HostFile returns the path to host.yaml.
func (p Paths) HostFile() string {
	return filepath.Join(p.Base, HostFileName)
}

// WidgetsDir resolves the configured widgets folder against the base dir.
func (p Paths) WidgetsDir(configured string) string {
	if configured == "" {
		configured = "widgets"
	}
	if filepath.IsAbs(configured) {
		return configured
	}
	return filepath.Join(p.Base, configured)
}

// MetadataFile returns the path to a widget folder's metadata.json.
func MetadataFile(folder string) string {
	return filepath.Join(folder, MetadataFileName)
}

// ContentFile returns the path to a widget folder's index.html.
func ContentFile(folder string) string {
	return filepath.Join(folder, ContentFileName)
}
