// Package host runs the widget host: tray, widget windows and the event loop
// that ties them together.
package host

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/watchfire-io/widgethost/internal/config"
	"github.com/watchfire-io/widgethost/internal/models"
	"github.com/watchfire-io/widgethost/internal/toolkit"
	"github.com/watchfire-io/widgethost/internal/toolkit/x11"
	"github.com/watchfire-io/widgethost/internal/tray"
	"github.com/watchfire-io/widgethost/internal/watcher"
	"github.com/watchfire-io/widgethost/internal/widget"
)

// ChangedNotice is shown in the tray once the widgets folder changes.
const ChangedNotice = "Widgets changed, restart to reload"

// Options configures [Run].
type Options struct {
	// BaseDir holds the state files and the widgets folder. Empty means the
	// executable's directory.
	BaseDir string

	// Display is the X display to use. Empty means $DISPLAY.
	Display string
}

// Menu is the tray surface the event loop updates.
type Menu interface {
	SetChecked(name models.WidgetName, checked bool)
	ShowNotice(text string)
	Quit()
}

// Host owns the widget manager and runs the single event loop.
type Host struct {
	paths   config.Paths
	manager *widget.Manager
	toolkit toolkit.Toolkit
	menu    Menu

	events  chan widget.Event
	changes <-chan watcher.Event

	// stopping is closed when Exit starts, done when it has finished.
	stopping chan struct{}
	done     chan struct{}
	exitErr  error
}

func newHost(paths config.Paths, tk toolkit.Toolkit, menu Menu) *Host {
	return &Host{
		paths:    paths,
		toolkit:  tk,
		menu:     menu,
		events:   make(chan widget.Event, 16),
		stopping: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run starts the widget host and blocks until it exits. The returned error is
// non-nil when startup failed or the final state could not be saved.
func Run(opts Options) error {
	paths, err := config.NewPaths(opts.BaseDir)
	if err != nil {
		return err
	}

	running, info, err := config.IsHostRunning(paths)
	if err != nil {
		return fmt.Errorf("failed to check host status: %w", err)
	}
	if running {
		return fmt.Errorf("widget host already running (PID %d)", info.PID)
	}

	settings, err := config.LoadSettings(paths)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	logFile, err := setupLogging(paths, settings)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	widgetsDir := paths.WidgetsDir(settings.WidgetsDir)
	defs, err := widget.Discover(widgetsDir)
	if err != nil {
		return fmt.Errorf("failed to discover widgets: %w", err)
	}
	log.Printf("Discovered %d widgets in %s", len(defs), widgetsDir)

	store := widget.NewStore(paths)
	state, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load widget state: %w", err)
	}

	tk, err := x11.Open(opts.Display)
	if err != nil {
		return err
	}

	h := newHost(paths, tk, trayMenu{})
	h.manager = widget.NewManager(defs, state, tk, store, widget.Options{
		Blur: settings.Blur,
		Emit: h.post,
	})

	var startErr error
	onStart := func() {
		if err := h.start(len(defs)); err != nil {
			startErr = err
			log.Printf("Failed to start: %v", err)
			_ = tk.Close()
			close(h.stopping)
			close(h.done)
			tray.Quit()
			return
		}

		tray.Build(h.manager.MenuEntries(), trayHandler{h})

		if settings.WatchWidgets {
			h.watch(widgetsDir)
		}

		// Handle OS signals: exit cleanly on SIGINT/SIGTERM
		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigCh
			log.Printf("Received signal %v, shutting down...", sig)
			h.post(widget.ExitRequested{})
		}()

		go h.loop()
	}

	onExit := func() {
		// The tray can also be quit from outside the menu.
		h.post(widget.ExitRequested{})
		<-h.done
		log.Println("Widget host stopped")
	}

	// This blocks the main goroutine until the tray exits.
	tray.Run(onStart, onExit)

	if startErr != nil {
		return startErr
	}
	return h.exitErr
}

// start creates the widget windows and records the running host.
func (h *Host) start(widgetCount int) error {
	if err := h.manager.Start(); err != nil {
		return err
	}

	info := models.NewHostInfo(os.Getpid(), h.paths.Base, widgetCount)
	if err := config.SaveHostInfo(h.paths, info); err != nil {
		return fmt.Errorf("failed to write host info: %w", err)
	}

	log.Printf("Widget host started (PID %d)", info.PID)
	return nil
}

func (h *Host) watch(dir string) {
	w, err := watcher.New(dir)
	if err != nil {
		log.Printf("Warning: failed to create watcher: %v", err)
		return
	}
	if err := w.Start(); err != nil {
		log.Printf("Warning: failed to watch %s: %v", dir, err)
		w.Stop()
		return
	}
	h.changes = w.Events()

	go func() {
		<-h.stopping
		w.Stop()
	}()
}

// post hands an event to the loop. Events posted after Exit has started are
// dropped.
func (h *Host) post(ev widget.Event) {
	select {
	case h.events <- ev:
	case <-h.stopping:
	}
}

// loop is the only goroutine that touches the manager once started.
func (h *Host) loop() {
	for {
		select {
		case ev := <-h.events:
			if h.handle(ev) {
				return
			}
		case change := <-h.changes:
			log.Printf("Widgets folder changed: %s", change.Path)
			h.menu.ShowNotice(ChangedNotice)
		}
	}
}

// handle applies one event and reports whether the loop should stop.
func (h *Host) handle(ev widget.Event) bool {
	switch ev := ev.(type) {
	case widget.ExitRequested:
		h.exit()
		return true
	case widget.Toggled:
		h.apply(ev, ev.Name)
	case widget.CloseRequested:
		h.apply(ev, ev.Name)
	}
	return false
}

// apply hands ev to the manager and syncs the tray checkbox with the result.
func (h *Host) apply(ev widget.Event, name models.WidgetName) {
	if err := h.manager.Handle(ev); err != nil {
		log.Printf("Failed to handle %T for %q: %v", ev, name, err)
	}
	if visible, err := h.manager.Visible(name); err == nil {
		h.menu.SetChecked(name, visible)
	}
}

func (h *Host) exit() {
	close(h.stopping)

	if err := h.manager.Handle(widget.ExitRequested{}); err != nil {
		log.Printf("Failed to save widget state: %v", err)
		h.exitErr = fmt.Errorf("failed to save widget state: %w", err)
	}

	if err := h.toolkit.Close(); err != nil {
		log.Printf("Failed to close toolkit: %v", err)
	}
	if err := config.RemoveHostInfo(h.paths); err != nil {
		log.Printf("Failed to remove host info: %v", err)
	}

	close(h.done)
	h.menu.Quit()
}

// setupLogging configures the standard logger. The returned file, if any,
// must be closed on exit.
func setupLogging(paths config.Paths, settings *models.Settings) (io.Closer, error) {
	log.SetPrefix("[widgethost] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if settings.LogFile == "" {
		return nil, nil
	}

	path := settings.LogFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(paths.Base, path)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))
	return f, nil
}
