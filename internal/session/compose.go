package session

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/fingerdraw/internal/detector"
	"github.com/ayusman/fingerdraw/internal/gesture"
)

// Compositing and overlay constants.
const (
	FrameWeight  = 0.7
	CanvasWeight = 0.3

	LabelScale     = 0.7
	LabelThickness = 2

	TipRadius      = 10
	LandmarkRadius = 4
)

// LabelOrigin is where the brush readout is drawn.
var LabelOrigin = image.Pt(10, 30)

var (
	White = color.RGBA{R: 255, G: 255, B: 255, A: 0}
	Gray  = color.RGBA{R: 128, G: 128, B: 128, A: 0}
)

// Compose blends frame and canvas into dst and writes the brush readout.
// frame and canvas must have the same size and type. Neither is modified.
func Compose(frame, canvas gocv.Mat, thickness int, dst *gocv.Mat) {
	gocv.AddWeighted(frame, FrameWeight, canvas, CanvasWeight, 0, dst)
	gocv.PutText(dst, BrushLabel(thickness), LabelOrigin, gocv.FontHersheySimplex, LabelScale, White, LabelThickness)
}

// BrushLabel is the text shown for the current thickness.
func BrushLabel(thickness int) string {
	return fmt.Sprintf("Brush Size: %d", thickness)
}

// DrawHand draws the landmark skeleton and a fingertip marker onto frame.
// The marker uses ink when the hand is open and gray otherwise.
func DrawHand(frame *gocv.Mat, hand *detector.HandLandmarks, ink color.RGBA) {
	w, h := frame.Cols(), frame.Rows()

	for _, c := range detector.Connections {
		gocv.Line(frame, hand.Pixel(c[0], w, h), hand.Pixel(c[1], w, h), White, 2)
	}
	for i := 0; i < detector.NumLandmarks; i++ {
		gocv.Circle(frame, hand.Pixel(i, w, h), LandmarkRadius, Red, -1)
	}

	marker := Gray
	if gesture.IsOpen(hand) {
		marker = ink
	}
	gocv.Circle(frame, hand.Pixel(detector.IndexTip, w, h), TipRadius, marker, -1)
}
