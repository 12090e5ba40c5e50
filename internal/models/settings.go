package models

// Settings represents host settings.
// This corresponds to settings.yaml beside the application.
type Settings struct {
	Version int `yaml:"version"`

	// WidgetsDir is the folder holding one subfolder per widget. Relative
	// paths are resolved against the base directory.
	WidgetsDir string `yaml:"widgets_dir"`

	// Blur requests a translucent blurred background for widget windows.
	Blur bool `yaml:"blur"`

	// WatchWidgets enables the widgets-folder change notice.
	WatchWidgets bool `yaml:"watch_widgets"`

	// LogFile redirects the host log. Empty means stderr.
	LogFile string `yaml:"log_file,omitempty"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version:      1,
		WidgetsDir:   "widgets",
		Blur:         true,
		WatchWidgets: true,
	}
}
