package host

import (
	"github.com/watchfire-io/widgethost/internal/models"
	"github.com/watchfire-io/widgethost/internal/tray"
	"github.com/watchfire-io/widgethost/internal/widget"
)

// trayMenu is the system tray as seen by the event loop.
type trayMenu struct{}

func (trayMenu) SetChecked(name models.WidgetName, checked bool) { tray.SetChecked(name, checked) }
func (trayMenu) ShowNotice(text string)                          { tray.ShowNotice(text) }
func (trayMenu) Quit()                                           { tray.Quit() }

// trayHandler turns menu clicks into loop events.
type trayHandler struct {
	h *Host
}

func (t trayHandler) Toggle(name models.WidgetName, enabled bool) {
	t.h.post(widget.Toggled{Name: name, Enabled: enabled})
}

func (t trayHandler) Exit() {
	t.h.post(widget.ExitRequested{})
}
