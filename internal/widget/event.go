package widget

import "github.com/watchfire-io/widgethost/internal/models"

// Event is an input to [Manager.Handle].
type Event interface {
	event()
}

// Toggled sets a widget's enabled state from the tray menu.
type Toggled struct {
	Name    models.WidgetName
	Enabled bool
}

// CloseRequested reports a user close on a widget window.
type CloseRequested struct {
	Name models.WidgetName
}

// ExitRequested tears every window down and persists state.
type ExitRequested struct{}

func (Toggled) event()        {}
func (CloseRequested) event() {}
func (ExitRequested) event()  {}
