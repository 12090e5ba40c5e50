package models

import "time"

// HostInfo describes a running widget host.
// This corresponds to host.yaml beside the application.
type HostInfo struct {
	Version     int       `yaml:"version"`
	PID         int       `yaml:"pid"`
	BaseDir     string    `yaml:"base_dir"`
	WidgetCount int       `yaml:"widget_count"`
	StartedAt   time.Time `yaml:"started_at"`
}

// NewHostInfo creates host info for the current process.
func NewHostInfo(pid int, baseDir string, widgetCount int) *HostInfo {
	return &HostInfo{
		Version:     1,
		PID:         pid,
		BaseDir:     baseDir,
		WidgetCount: widgetCount,
		StartedAt:   time.Now().UTC(),
	}
}
