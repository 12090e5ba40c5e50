// Package tray implements the system tray icon and widget menu.
package tray

import (
	_ "embed"
	"fmt"
	"log"
	"sync"

	"github.com/getlantern/systray"

	"github.com/watchfire-io/widgethost/internal/buildinfo"
	"github.com/watchfire-io/widgethost/internal/models"
	"github.com/watchfire-io/widgethost/internal/widget"
)

//go:embed icon.png
var iconData []byte

// Handler receives menu actions. Methods are called from click goroutines.
type Handler interface {
	Toggle(name models.WidgetName, enabled bool)
	Exit()
}

var (
	onStart func()
	onExit  func()

	mu         sync.Mutex
	items      = make(map[models.WidgetName]*systray.MenuItem)
	noticeItem *systray.MenuItem
	exitItem   *systray.MenuItem
)

// Run starts the system tray. This blocks the calling goroutine (must be main).
// onStartFn is called when the tray is ready (create windows and menu here).
// onExitFn is called when the tray exits (cleanup here).
func Run(onStartFn, onExitFn func()) {
	onStart = onStartFn
	onExit = onExitFn
	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func onReady() {
	systray.SetIcon(iconData)
	systray.SetTitle("")
	systray.SetTooltip(buildinfo.AppName)

	if onStart != nil {
		onStart()
	}
}

func onQuit() {
	if onExit != nil {
		onExit()
	}
}

// Build adds one checkbox per widget, a notice slot and the Exit item.
// It must be called once, from the start callback.
func Build(entries []widget.MenuEntry, h Handler) {
	mu.Lock()
	defer mu.Unlock()

	if len(entries) == 0 {
		empty := systray.AddMenuItem("No widgets found", "")
		empty.Disable()
	}

	for _, e := range entries {
		item := systray.AddMenuItemCheckbox(string(e.Name), fmt.Sprintf("Show or hide %s", e.Name), e.Checked)
		items[e.Name] = item
		go forwardToggle(e.Name, item, h)
	}

	// Hidden until the widgets folder changes
	noticeItem = systray.AddMenuItem("", "")
	noticeItem.Disable()
	noticeItem.Hide()

	systray.AddSeparator()

	exitItem = systray.AddMenuItem("Exit", fmt.Sprintf("Save widget state and quit %s", buildinfo.AppName))
	go forwardExit(exitItem, h)

	updateTooltip()
}

// forwardToggle turns clicks on a widget item into toggle requests. The
// checkbox is not updated here; the host syncs it once the toggle is applied.
func forwardToggle(name models.WidgetName, item *systray.MenuItem, h Handler) {
	for range item.ClickedCh {
		h.Toggle(name, !item.Checked())
	}
}

func forwardExit(item *systray.MenuItem, h Handler) {
	for range item.ClickedCh {
		log.Println("[tray] Exit requested")
		h.Exit()
	}
}

// SetChecked syncs a widget checkbox with its window visibility.
func SetChecked(name models.WidgetName, checked bool) {
	mu.Lock()
	defer mu.Unlock()

	item, ok := items[name]
	if !ok {
		return
	}

	if checked {
		item.Check()
	} else {
		item.Uncheck()
	}
	updateTooltip()
}

// ShowNotice displays a disabled informational line in the menu.
func ShowNotice(text string) {
	mu.Lock()
	defer mu.Unlock()

	if noticeItem == nil {
		return
	}
	noticeItem.SetTitle(text)
	noticeItem.Show()
}

// updateTooltip must be called with mu held.
func updateTooltip() {
	visible := 0
	for _, item := range items {
		if item.Checked() {
			visible++
		}
	}
	systray.SetTooltip(formatTooltip(visible, len(items)))
}

func formatTooltip(visible, total int) string {
	switch total {
	case 0:
		return fmt.Sprintf("%s: no widgets", buildinfo.AppName)
	case 1:
		return fmt.Sprintf("%s: %d of 1 widget visible", buildinfo.AppName, visible)
	default:
		return fmt.Sprintf("%s: %d of %d widgets visible", buildinfo.AppName, visible, total)
	}
}
