package x11

import (
	"sync"

	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"

	"github.com/watchfire-io/widgethost/internal/models"
)

// Window is an X11 widget window.
type Window struct {
	tk      *Toolkit
	id      xproto.Window
	onClose func()

	mu        sync.Mutex
	mapped    bool
	destroyed bool
	last      models.Point
}

// Show maps the window at its last known position.
func (w *Window) Show() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.destroyed {
		return errors.New("window destroyed")
	}
	if w.mapped {
		return nil
	}

	if err := xproto.MapWindowChecked(w.tk.conn, w.id).Check(); err != nil {
		return errors.Wrap(err, "failed to map window")
	}

	// Window managers may place a newly mapped window themselves.
	err := xproto.ConfigureWindowChecked(w.tk.conn, w.id,
		xproto.ConfigWindowX|xproto.ConfigWindowY,
		[]uint32{uint32(int32(w.last.X)), uint32(int32(w.last.Y))}).Check()
	if err != nil {
		return errors.Wrap(err, "failed to move window")
	}

	w.mapped = true
	return nil
}

// Hide remembers the current position and unmaps the window.
func (w *Window) Hide() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.destroyed {
		return errors.New("window destroyed")
	}
	if !w.mapped {
		return nil
	}

	if p, err := w.queryPosition(); err == nil {
		w.last = p
	}

	if err := xproto.UnmapWindowChecked(w.tk.conn, w.id).Check(); err != nil {
		return errors.Wrap(err, "failed to unmap window")
	}

	w.mapped = false
	return nil
}

// Position returns the on-screen position of the window, or the position it
// had when it was hidden.
func (w *Window) Position() (models.Point, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.destroyed {
		return models.Point{}, errors.New("window destroyed")
	}
	if !w.mapped {
		return w.last, nil
	}

	p, err := w.queryPosition()
	if err != nil {
		return models.Point{}, err
	}
	w.last = p
	return p, nil
}

// Destroy releases the window.
func (w *Window) Destroy() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.destroyed {
		return nil
	}
	w.destroyed = true

	w.tk.mu.Lock()
	delete(w.tk.windows, w.id)
	w.tk.mu.Unlock()

	if err := xproto.DestroyWindowChecked(w.tk.conn, w.id).Check(); err != nil {
		return errors.Wrap(err, "failed to destroy window")
	}
	return nil
}

// queryPosition translates the window origin to root coordinates.
func (w *Window) queryPosition() (models.Point, error) {
	reply, err := xproto.TranslateCoordinates(w.tk.conn, w.id, w.tk.screen.Root, 0, 0).Reply()
	if err != nil {
		return models.Point{}, errors.Wrap(err, "failed to query window position")
	}
	return models.Point{X: int(reply.DstX), Y: int(reply.DstY)}, nil
}
