// Package x11 implements toolkit.Toolkit on an X11 connection.
package x11

import (
	"log"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"

	"github.com/watchfire-io/widgethost/internal/toolkit"
)

var atomNames = []string{
	"WM_PROTOCOLS",
	"WM_DELETE_WINDOW",
	"UTF8_STRING",
	"_NET_WM_NAME",
	"_NET_WM_STATE",
	"_NET_WM_STATE_ABOVE",
	"_NET_WM_STATE_SKIP_TASKBAR",
	"_NET_WM_STATE_SKIP_PAGER",
	"_MOTIF_WM_HINTS",
	"_KDE_NET_WM_BLUR_BEHIND_REGION",
	"_WIDGETHOST_CONTENT",
	"_WIDGETHOST_SANDBOXED",
}

// Toolkit is an X11 connection that owns widget windows.
type Toolkit struct {
	conn   *xgb.Conn
	screen *xproto.ScreenInfo
	atoms  map[string]xproto.Atom

	// ARGB visual, zero when the screen has none.
	argbVisual xproto.Visualid
	argbCmap   xproto.Colormap

	mu      sync.Mutex
	windows map[xproto.Window]*Window
	done    chan struct{}
}

// Open connects to the X server named by display, or $DISPLAY when empty.
func Open(display string) (*Toolkit, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to X server")
	}

	setup := xproto.Setup(conn)
	tk := &Toolkit{
		conn:    conn,
		screen:  setup.DefaultScreen(conn),
		atoms:   make(map[string]xproto.Atom, len(atomNames)),
		windows: make(map[xproto.Window]*Window),
		done:    make(chan struct{}),
	}

	for _, name := range atomNames {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			conn.Close()
			return nil, errors.Wrapf(err, "failed to intern atom %s", name)
		}
		tk.atoms[name] = reply.Atom
	}

	if visual, ok := findARGBVisual(tk.screen); ok {
		cmap, err := xproto.NewColormapId(conn)
		if err == nil {
			err = xproto.CreateColormapChecked(conn, xproto.ColormapAllocNone, cmap, tk.screen.Root, visual).Check()
		}
		if err != nil {
			log.Printf("[x11] No ARGB colormap, windows will be opaque: %v", err)
		} else {
			tk.argbVisual = visual
			tk.argbCmap = cmap
		}
	}

	go tk.readEvents()

	return tk, nil
}

// CreateWindow creates and maps a widget window.
func (tk *Toolkit) CreateWindow(opts toolkit.WindowOptions) (toolkit.Window, error) {
	wid, err := xproto.NewWindowId(tk.conn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to allocate window id")
	}

	depth := byte(0) // CopyFromParent
	visual := tk.screen.RootVisual
	mask := uint32(xproto.CwBackPixel | xproto.CwEventMask)
	values := []uint32{tk.screen.BlackPixel, eventMask}

	if opts.Blur && tk.argbVisual != 0 {
		depth = 32
		visual = tk.argbVisual
		mask = xproto.CwBackPixel | xproto.CwBorderPixel | xproto.CwEventMask | xproto.CwColormap
		values = []uint32{translucentBackground, 0, eventMask, uint32(tk.argbCmap)}
	}

	err = xproto.CreateWindowChecked(tk.conn, depth, wid, tk.screen.Root,
		int16(opts.Position.X), int16(opts.Position.Y),
		uint16(opts.Width), uint16(opts.Height), 0,
		xproto.WindowClassInputOutput, visual, mask, values).Check()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create window %q", opts.Title)
	}

	w := &Window{
		tk:      tk,
		id:      wid,
		onClose: opts.OnClose,
		last:    opts.Position,
	}

	if err := tk.setProperties(wid, opts); err != nil {
		_ = xproto.DestroyWindowChecked(tk.conn, wid).Check()
		return nil, err
	}

	tk.mu.Lock()
	tk.windows[wid] = w
	tk.mu.Unlock()

	if err := w.Show(); err != nil {
		_ = w.Destroy()
		return nil, err
	}

	return w, nil
}

// Close destroys remaining windows and closes the connection.
func (tk *Toolkit) Close() error {
	tk.mu.Lock()
	remaining := make([]*Window, 0, len(tk.windows))
	for _, w := range tk.windows {
		remaining = append(remaining, w)
	}
	tk.mu.Unlock()

	for _, w := range remaining {
		_ = w.Destroy()
	}

	tk.conn.Close()
	<-tk.done
	return nil
}

type property struct {
	name   string
	atom   xproto.Atom
	typ    xproto.Atom
	format byte
	data   []byte
}

// setProperties applies the window manager hints for opts.
func (tk *Toolkit) setProperties(wid xproto.Window, opts toolkit.WindowOptions) error {
	props := []property{
		{"WM_NAME", xproto.AtomWmName, xproto.AtomString, 8, []byte(opts.Title)},
		{"_NET_WM_NAME", tk.atoms["_NET_WM_NAME"], tk.atoms["UTF8_STRING"], 8, []byte(opts.Title)},
		{"WM_CLASS", xproto.AtomWmClass, xproto.AtomString, 8, wmClass("widgethost", opts.Title)},
		{"WM_PROTOCOLS", tk.atoms["WM_PROTOCOLS"], xproto.AtomAtom, 32, atomList(tk.atoms["WM_DELETE_WINDOW"])},
		{"WM_NORMAL_HINTS", xproto.AtomWmNormalHints, xproto.AtomWmSizeHints, 32, sizeHints(opts)},
		{"_MOTIF_WM_HINTS", tk.atoms["_MOTIF_WM_HINTS"], tk.atoms["_MOTIF_WM_HINTS"], 32, motifHints(opts.Frameless)},
		{"_NET_WM_STATE", tk.atoms["_NET_WM_STATE"], xproto.AtomAtom, 32, atomList(tk.netWMState(opts)...)},
		{"_WIDGETHOST_CONTENT", tk.atoms["_WIDGETHOST_CONTENT"], tk.atoms["UTF8_STRING"], 8, []byte(opts.ContentURL)},
		{"_WIDGETHOST_SANDBOXED", tk.atoms["_WIDGETHOST_SANDBOXED"], xproto.AtomCardinal, 32, cardinal(boolToUint32(opts.Sandboxed))},
	}

	if opts.Blur {
		// An empty region blurs the whole window.
		props = append(props, property{"_KDE_NET_WM_BLUR_BEHIND_REGION", tk.atoms["_KDE_NET_WM_BLUR_BEHIND_REGION"], xproto.AtomCardinal, 32, nil})
	}

	for _, p := range props {
		n := uint32(len(p.data))
		if p.format == 32 {
			n /= 4
		}
		err := xproto.ChangePropertyChecked(tk.conn, xproto.PropModeReplace, wid, p.atom, p.typ, p.format, n, p.data).Check()
		if err != nil {
			return errors.Wrapf(err, "failed to set %s on %q", p.name, opts.Title)
		}
	}
	return nil
}

// netWMState returns the initial _NET_WM_STATE atoms for opts.
func (tk *Toolkit) netWMState(opts toolkit.WindowOptions) []xproto.Atom {
	var state []xproto.Atom
	if opts.SkipTaskbar {
		state = append(state, tk.atoms["_NET_WM_STATE_SKIP_TASKBAR"], tk.atoms["_NET_WM_STATE_SKIP_PAGER"])
	}
	if opts.AlwaysOnTop {
		state = append(state, tk.atoms["_NET_WM_STATE_ABOVE"])
	}
	return state
}

// readEvents delivers close requests until the connection closes.
func (tk *Toolkit) readEvents() {
	defer close(tk.done)

	for {
		ev, xerr := tk.conn.WaitForEvent()
		if ev == nil && xerr == nil {
			return
		}
		if xerr != nil {
			log.Printf("[x11] Error: %v", xerr)
			continue
		}

		switch e := ev.(type) {
		case xproto.ClientMessageEvent:
			if e.Type != tk.atoms["WM_PROTOCOLS"] || e.Format != 32 || len(e.Data.Data32) == 0 {
				continue
			}
			if xproto.Atom(e.Data.Data32[0]) != tk.atoms["WM_DELETE_WINDOW"] {
				continue
			}
			tk.mu.Lock()
			w := tk.windows[e.Window]
			tk.mu.Unlock()
			if w != nil && w.onClose != nil {
				w.onClose()
			}
		case xproto.DestroyNotifyEvent:
			tk.mu.Lock()
			delete(tk.windows, e.Window)
			tk.mu.Unlock()
		}
	}
}
