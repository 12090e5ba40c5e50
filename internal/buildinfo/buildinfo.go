// Package buildinfo holds version information injected at build time via ldflags.
package buildinfo

// AppName is the binary and tray name.
const AppName = "widgethost"

var (
	Version    = "dev"
	Codename   = "unknown"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)
