package config

import (
	"os"
	"syscall"

	"github.com/watchfire-io/widgethost/internal/models"
)

// LoadHostInfo loads the running-host info from host.yaml.
// Returns nil if the file doesn't exist.
func LoadHostInfo(p Paths) (*models.HostInfo, error) {
	path := p.HostFile()
	if !FileExists(path) {
		return nil, nil
	}

	var info models.HostInfo
	if err := LoadYAML(path, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SaveHostInfo saves the running-host info to host.yaml.
func SaveHostInfo(p Paths, info *models.HostInfo) error {
	return SaveYAML(p.HostFile(), info)
}

// RemoveHostInfo removes the host.yaml file.
func RemoveHostInfo(p Paths) error {
	path := p.HostFile()
	if !FileExists(path) {
		return nil
	}
	return os.Remove(path)
}

// IsHostRunning checks if the host process recorded in host.yaml is alive.
// A stale file left by a crashed host is removed.
func IsHostRunning(p Paths) (bool, *models.HostInfo, error) {
	info, err := LoadHostInfo(p)
	if err != nil {
		return false, nil, err
	}
	if info == nil {
		return false, nil, nil
	}

	// On Unix, FindProcess always succeeds
	process, err := os.FindProcess(info.PID)
	if err != nil {
		return false, info, nil
	}

	// Send signal 0 to check if process exists
	if err := process.Signal(syscall.Signal(0)); err != nil {
		_ = RemoveHostInfo(p)
		return false, info, nil
	}

	return true, info, nil
}
