package x11

import (
	"os"
	"testing"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/watchfire-io/widgethost/internal/models"
	"github.com/watchfire-io/widgethost/internal/toolkit"
)

func decode32(t *testing.T, buf []byte) []uint32 {
	t.Helper()
	if len(buf)%4 != 0 {
		t.Fatalf("length %d is not a multiple of 4", len(buf))
	}
	values := make([]uint32, len(buf)/4)
	for i := range values {
		values[i] = xgb.Get32(buf[4*i:])
	}
	return values
}

func TestSizeHints(t *testing.T) {
	opts := toolkit.WindowOptions{
		Width:    200,
		Height:   100,
		Position: models.Point{X: 150, Y: -20},
	}

	hints := decode32(t, sizeHints(opts))
	if len(hints) != 18 {
		t.Fatalf("expected 18 fields, got %d", len(hints))
	}

	wantFlags := uint32(sizeHintUSPosition | sizeHintPPosition | sizeHintPMinSize | sizeHintPMaxSize)
	if hints[0] != wantFlags {
		t.Errorf("flags = %#x, want %#x", hints[0], wantFlags)
	}
	if int32(hints[1]) != 150 || int32(hints[2]) != -20 {
		t.Errorf("position = (%d, %d), want (150, -20)", int32(hints[1]), int32(hints[2]))
	}
	for i, want := range map[int]uint32{3: 200, 4: 100, 5: 200, 6: 100, 7: 200, 8: 100} {
		if hints[i] != want {
			t.Errorf("hints[%d] = %d, want %d", i, hints[i], want)
		}
	}
}

func TestSizeHintsResizable(t *testing.T) {
	hints := decode32(t, sizeHints(toolkit.WindowOptions{Width: 10, Height: 10, Resizable: true}))
	if hints[0]&(sizeHintPMinSize|sizeHintPMaxSize) != 0 {
		t.Errorf("resizable window should not set min/max size, flags = %#x", hints[0])
	}
}

func TestMotifHints(t *testing.T) {
	tests := []struct {
		name      string
		frameless bool
		want      []uint32
	}{
		{"frameless", true, []uint32{motifHintsDecorations, 0, 0, 0, 0}},
		{"decorated", false, []uint32{0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decode32(t, motifHints(tt.frameless))
			if len(got) != len(tt.want) {
				t.Fatalf("got %d fields, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("field %d = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWMClass(t *testing.T) {
	got := string(wmClass("widgethost", "Clock"))
	if got != "widgethost\x00Clock\x00" {
		t.Errorf("wmClass = %q", got)
	}
}

func TestAtomList(t *testing.T) {
	got := decode32(t, atomList(xproto.Atom(5), xproto.Atom(300)))
	if len(got) != 2 || got[0] != 5 || got[1] != 300 {
		t.Errorf("atomList = %v", got)
	}
	if len(atomList()) != 0 {
		t.Error("empty atom list should encode to no bytes")
	}
}

func TestFindARGBVisual(t *testing.T) {
	screen := &xproto.ScreenInfo{
		AllowedDepths: []xproto.DepthInfo{
			{Depth: 24, Visuals: []xproto.VisualInfo{{VisualId: 33, Class: xproto.VisualClassTrueColor}}},
			{Depth: 32, Visuals: []xproto.VisualInfo{
				{VisualId: 40, Class: xproto.VisualClassDirectColor},
				{VisualId: 41, Class: xproto.VisualClassTrueColor},
			}},
		},
	}

	visual, ok := findARGBVisual(screen)
	if !ok || visual != 41 {
		t.Errorf("findARGBVisual = %d, %v; want 41, true", visual, ok)
	}

	if _, ok := findARGBVisual(&xproto.ScreenInfo{}); ok {
		t.Error("expected no ARGB visual on an empty screen")
	}
}

func TestWindowLifecycle(t *testing.T) {
	if os.Getenv("DISPLAY") == "" {
		t.Skip("no X display")
	}

	tk, err := Open("")
	if err != nil {
		t.Skipf("X server unavailable: %v", err)
	}
	defer func() { _ = tk.Close() }()

	w, err := tk.CreateWindow(toolkit.WindowOptions{
		Title:       "Test",
		Width:       120,
		Height:      80,
		Position:    models.Point{X: 40, Y: 60},
		Frameless:   true,
		SkipTaskbar: true,
		ContentURL:  "file:///tmp/index.html",
	})
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}

	if err := w.Hide(); err != nil {
		t.Fatalf("Hide: %v", err)
	}
	if _, err := w.Position(); err != nil {
		t.Errorf("Position of hidden window: %v", err)
	}
	if err := w.Show(); err != nil {
		t.Fatalf("Show: %v", err)
	}
	if err := w.Destroy(); err != nil {
		t.Errorf("Destroy: %v", err)
	}
	if _, err := w.Position(); err == nil {
		t.Error("expected error from destroyed window")
	}
}
