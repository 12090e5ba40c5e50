package x11

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/watchfire-io/widgethost/internal/toolkit"
)

const (
	eventMask = xproto.EventMaskStructureNotify | xproto.EventMaskExposure

	// 50% dark grey, premultiplied ARGB.
	translucentBackground = 0x80101010
)

// WM_SIZE_HINTS flags (ICCCM 4.1.2.3).
const (
	sizeHintUSPosition = 1 << 0
	sizeHintPPosition  = 1 << 2
	sizeHintPMinSize   = 1 << 4
	sizeHintPMaxSize   = 1 << 5
)

// _MOTIF_WM_HINTS flags.
const motifHintsDecorations = 1 << 1

// sizeHints encodes WM_NORMAL_HINTS. A fixed-size window has equal minimum
// and maximum sizes.
func sizeHints(opts toolkit.WindowOptions) []byte {
	hints := make([]uint32, 18)
	hints[0] = sizeHintUSPosition | sizeHintPPosition
	hints[1] = uint32(int32(opts.Position.X))
	hints[2] = uint32(int32(opts.Position.Y))
	hints[3] = uint32(opts.Width)
	hints[4] = uint32(opts.Height)
	if !opts.Resizable {
		hints[0] |= sizeHintPMinSize | sizeHintPMaxSize
		hints[5] = uint32(opts.Width)
		hints[6] = uint32(opts.Height)
		hints[7] = uint32(opts.Width)
		hints[8] = uint32(opts.Height)
	}
	return cardinal(hints...)
}

// motifHints encodes _MOTIF_WM_HINTS: flags, functions, decorations,
// input mode, status.
func motifHints(frameless bool) []byte {
	if !frameless {
		return cardinal(0, 0, 0, 0, 0)
	}
	return cardinal(motifHintsDecorations, 0, 0, 0, 0)
}

// wmClass encodes WM_CLASS as two NUL-terminated strings.
func wmClass(instance, class string) []byte {
	buf := make([]byte, 0, len(instance)+len(class)+2)
	buf = append(buf, instance...)
	buf = append(buf, 0)
	buf = append(buf, class...)
	return append(buf, 0)
}

func atomList(atoms ...xproto.Atom) []byte {
	values := make([]uint32, len(atoms))
	for i, a := range atoms {
		values[i] = uint32(a)
	}
	return cardinal(values...)
}

func cardinal(values ...uint32) []byte {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		xgb.Put32(buf[4*i:], v)
	}
	return buf
}

func boolToUint32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// findARGBVisual returns a 32-bit TrueColor visual of the screen.
func findARGBVisual(screen *xproto.ScreenInfo) (xproto.Visualid, bool) {
	for _, depth := range screen.AllowedDepths {
		if depth.Depth != 32 {
			continue
		}
		for _, v := range depth.Visuals {
			if v.Class == xproto.VisualClassTrueColor {
				return v.VisualId, true
			}
		}
	}
	return 0, false
}
