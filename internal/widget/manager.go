package widget

import (
	"fmt"
	"log"
	"net/url"
	"path/filepath"

	"github.com/watchfire-io/widgethost/internal/models"
	"github.com/watchfire-io/widgethost/internal/toolkit"
)

// Saver persists the final state at shutdown.
type Saver interface {
	Save(enabled map[models.WidgetName]bool, positions []models.PositionEntry) error
}

// Options configures a [Manager].
type Options struct {
	// Blur requests a blurred translucent background for every window.
	Blur bool

	// Emit delivers events raised by windows, such as close requests. It may
	// be called from a toolkit goroutine and must hand the event over to the
	// goroutine that calls [Manager.Handle].
	Emit func(Event)
}

// MenuEntry is one checkable tray menu entry.
type MenuEntry struct {
	Name    models.WidgetName
	Checked bool
}

// liveWidget is a discovered widget and its window.
type liveWidget struct {
	def     models.WidgetDefinition
	window  toolkit.Window
	visible bool
}

// Manager owns the widget windows and the in-memory enabled map.
//
// Manager is not safe for concurrent use. All calls must come from one
// goroutine; windows report close requests through [Options.Emit].
type Manager struct {
	defs    []models.WidgetDefinition
	state   *State
	toolkit toolkit.Toolkit
	saver   Saver
	opts    Options

	order   []models.WidgetName
	widgets map[models.WidgetName]*liveWidget
	enabled map[models.WidgetName]bool
	started bool
	closed  bool
}

// NewManager creates a manager for the discovered widgets. No window exists
// until [Manager.Start].
func NewManager(defs []models.WidgetDefinition, state *State, tk toolkit.Toolkit, saver Saver, opts Options) *Manager {
	if state == nil {
		state = NewState()
	}
	if opts.Emit == nil {
		opts.Emit = func(Event) {}
	}

	enabled := make(map[models.WidgetName]bool, len(state.Enabled))
	for name, v := range state.Enabled {
		enabled[name] = v
	}

	return &Manager{
		defs:    defs,
		state:   state,
		toolkit: tk,
		saver:   saver,
		opts:    opts,
		widgets: make(map[models.WidgetName]*liveWidget, len(defs)),
		enabled: enabled,
	}
}

// Start creates one window per widget in discovery order. Widgets disabled in
// the persisted state are created and hidden immediately.
func (m *Manager) Start() error {
	if m.closed {
		return ErrClosed
	}
	if m.started {
		return fmt.Errorf("widget manager already started")
	}
	m.started = true

	for _, def := range m.defs {
		if _, ok := m.widgets[def.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateWidget, def.Name)
		}

		position, visible := m.state.Resolve(def.Name)
		name := def.Name

		window, err := m.toolkit.CreateWindow(toolkit.WindowOptions{
			Title:       string(def.Name),
			Width:       def.Width,
			Height:      def.Height,
			Position:    position,
			Frameless:   true,
			Resizable:   false,
			AlwaysOnTop: false,
			SkipTaskbar: true,
			Blur:        m.opts.Blur,
			ContentURL:  contentURL(def.Content),
			Sandboxed:   false,
			OnClose: func() {
				m.opts.Emit(CloseRequested{Name: name})
			},
		})
		if err != nil {
			return fmt.Errorf("failed to create window for %q: %w", def.Name, err)
		}

		w := &liveWidget{def: def, window: window, visible: true}
		m.widgets[def.Name] = w
		m.order = append(m.order, def.Name)

		if !visible {
			if err := window.Hide(); err != nil {
				return fmt.Errorf("failed to hide %q: %w", def.Name, err)
			}
			w.visible = false
		}

		log.Printf("[widget] Created %q at (%d, %d), visible=%v", def.Name, position.X, position.Y, w.visible)
	}

	return nil
}

// MenuEntries returns one entry per live widget in discovery order, checked
// when the widget is visible.
func (m *Manager) MenuEntries() []MenuEntry {
	entries := make([]MenuEntry, 0, len(m.order))
	for _, name := range m.order {
		entries = append(entries, MenuEntry{Name: name, Checked: m.widgets[name].visible})
	}
	return entries
}

// Visible reports whether the named widget's window is shown.
func (m *Manager) Visible(name models.WidgetName) (bool, error) {
	w, ok := m.widgets[name]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownWidget, name)
	}
	return w.visible, nil
}

// Closed reports whether the manager has shut down.
func (m *Manager) Closed() bool {
	return m.closed
}

// Handle applies one event.
func (m *Manager) Handle(ev Event) error {
	if m.closed {
		return ErrClosed
	}

	switch ev := ev.(type) {
	case Toggled:
		return m.setEnabled(ev.Name, ev.Enabled)
	case CloseRequested:
		return m.setEnabled(ev.Name, false)
	case ExitRequested:
		return m.shutdown()
	default:
		return fmt.Errorf("unsupported event %T", ev)
	}
}

func (m *Manager) setEnabled(name models.WidgetName, enabled bool) error {
	w, ok := m.widgets[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownWidget, name)
	}

	m.enabled[name] = enabled

	var err error
	if enabled {
		err = w.window.Show()
	} else {
		err = w.window.Hide()
	}
	if err != nil {
		return fmt.Errorf("failed to update %q: %w", name, err)
	}
	w.visible = enabled

	log.Printf("[widget] %q enabled=%v", name, enabled)
	return nil
}

// shutdown records positions, destroys every window, then persists state.
func (m *Manager) shutdown() error {
	m.closed = true

	positions := make([]models.PositionEntry, 0, len(m.order))

	for _, name := range m.order {
		w := m.widgets[name]

		p, err := w.window.Position()
		if err != nil {
			// Keep the position the widget started at.
			log.Printf("[widget] Failed to read position of %q: %v", name, err)
			p, _ = m.state.Resolve(name)
		}
		positions = append(positions, models.NewPositionEntry(name, p))

		if err := w.window.Destroy(); err != nil {
			log.Printf("[widget] Failed to destroy %q: %v", name, err)
		}

		m.enabled[name] = w.visible
		delete(m.widgets, name)
	}
	m.order = nil

	if m.saver != nil {
		if err := m.saver.Save(m.enabled, positions); err != nil {
			return err
		}
	}

	log.Printf("[widget] Shut down, saved %d positions", len(positions))
	return nil
}

// contentURL turns a content path into a file URL.
func contentURL(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
