// Package session owns the drawing state of one run: the canvas, the
// stroke color and thickness, and the pen.
package session

import (
	"bytes"
	"fmt"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/fingerdraw/internal/gesture"
)

// Brush limits.
const (
	DefaultThickness = 5
	MinThickness     = 1
	MaxThickness     = 30
	ThicknessStep    = 2
)

// Stroke color presets.
var (
	Red   = color.RGBA{R: 255, G: 0, B: 0, A: 0}
	Green = color.RGBA{R: 0, G: 255, B: 0, A: 0}
	Blue  = color.RGBA{R: 0, G: 0, B: 255, A: 0}
)

// ColorName returns the preset name for c, or its hex form.
func ColorName(c color.RGBA) string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
}

// Session is the mutable drawing state. It is not safe for concurrent
// use; only the draw loop touches it.
type Session struct {
	Canvas    gocv.Mat
	Color     color.RGBA
	Thickness int
	Pen       gesture.Pen

	width  int
	height int
}

// New creates a session with an all-zero canvas of the given size,
// green ink and the default thickness.
func New(width, height int) *Session {
	return &Session{
		Canvas:    blankCanvas(width, height),
		Color:     Green,
		Thickness: DefaultThickness,
		width:     width,
		height:    height,
	}
}

func blankCanvas(width, height int) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), height, width, gocv.MatTypeCV8UC3)
}

// Width returns the canvas width in pixels.
func (s *Session) Width() int { return s.width }

// Height returns the canvas height in pixels.
func (s *Session) Height() int { return s.height }

// Close releases the canvas.
func (s *Session) Close() error {
	return s.Canvas.Close()
}

// Step feeds one frame's observation to the pen and draws the resulting
// segment, if any, with the current color and thickness.
func (s *Session) Step(obs gesture.Observation) (gesture.Segment, bool) {
	seg, ok := s.Pen.Update(obs)
	if ok {
		gocv.Line(&s.Canvas, seg.From, seg.To, s.Color, s.Thickness)
	}
	return seg, ok
}

// Apply performs the state change for cmd. Quit and snapshot do not
// change the session and are left to the caller. It reports whether the
// session changed.
func (s *Session) Apply(cmd Command) bool {
	switch cmd {
	case CmdClear:
		s.Clear()
	case CmdRed:
		s.Color = Red
	case CmdGreen:
		s.Color = Green
	case CmdBlue:
		s.Color = Blue
	case CmdBrushUp:
		s.Thickness = min(s.Thickness+ThicknessStep, MaxThickness)
	case CmdBrushDown:
		s.Thickness = max(s.Thickness-ThicknessStep, MinThickness)
	default:
		return false
	}
	return true
}

// Clear resets the canvas to all-zero. The pen state is kept.
func (s *Session) Clear() {
	s.Canvas.SetTo(gocv.NewScalar(0, 0, 0, 0))
}

// EncodePNG returns the canvas as PNG bytes.
func (s *Session) EncodePNG() ([]byte, error) {
	buf, err := gocv.IMEncode(gocv.PNGFileExt, s.Canvas)
	if err != nil {
		return nil, fmt.Errorf("encode canvas: %w", err)
	}
	defer buf.Close()
	return bytes.Clone(buf.GetBytes()), nil
}
