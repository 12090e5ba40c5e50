// Package toolkit defines the windowing operations the widget host needs from
// a native backend.
package toolkit

import "github.com/watchfire-io/widgethost/internal/models"

// WindowOptions describes a widget window at creation time.
type WindowOptions struct {
	// Title is the window title, normally the widget name.
	Title string

	Width    int
	Height   int
	Position models.Point

	// Frameless removes decorations and window chrome.
	Frameless bool

	// Resizable allows the user to change the window size.
	Resizable bool

	// AlwaysOnTop keeps the window above normal windows.
	AlwaysOnTop bool

	// SkipTaskbar excludes the window from taskbars, pagers and task switchers.
	SkipTaskbar bool

	// Blur requests a translucent blurred background.
	Blur bool

	// ContentURL is the entry point handed to the content renderer.
	ContentURL string

	// Sandboxed restricts the content's access to the host system.
	Sandboxed bool

	// OnClose runs when the user asks to close the window. The window is
	// never destroyed by a close request; the callback decides what happens.
	// It may be called from a backend goroutine.
	OnClose func()
}

// Window is a native window owned by the widget host.
type Window interface {
	Show() error
	Hide() error

	// Position returns the window's current top-left corner in screen
	// coordinates.
	Position() (models.Point, error)

	// Destroy releases the native window. The window must not be used after.
	Destroy() error
}

// Toolkit creates native windows.
type Toolkit interface {
	// CreateWindow creates a visible window.
	CreateWindow(opts WindowOptions) (Window, error)

	// Close releases the toolkit's connection to the windowing system.
	Close() error
}
