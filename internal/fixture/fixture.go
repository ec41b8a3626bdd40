// Package fixture builds synthetic camera frames and hand tracks for
// tests that drive the whole drawing loop.
package fixture

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/ayusman/fingerdraw/internal/detector"
)

// BlankFrames returns n black BGR frames of the given size. Release them
// with CloseAll.
func BlankFrames(n, width, height int) []*gocv.Mat {
	frames := make([]*gocv.Mat, n)
	for i := range frames {
		m := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)
		frames[i] = &m
	}
	return frames
}

// CloseAll releases frames.
func CloseAll(frames []*gocv.Mat) {
	for _, f := range frames {
		f.Close()
	}
}

// Stroke returns per-frame detector results for an open hand whose index
// tip moves from one pixel to another in steps equal moves, steps+1
// frames in total.
func Stroke(from, to image.Point, steps, width, height int) [][]detector.HandLandmarks {
	if steps < 1 {
		steps = 1
	}

	out := make([][]detector.HandLandmarks, 0, steps+1)
	for i := 0; i <= steps; i++ {
		x := from.X + (to.X-from.X)*i/steps
		y := from.Y + (to.Y-from.Y)*i/steps
		hand := detector.OpenPalmLandmarks().WithIndexTip(
			float64(x)/float64(width),
			float64(y)/float64(height),
		)
		out = append(out, []detector.HandLandmarks{hand})
	}
	return out
}

// Lift returns a detector result with a closed hand.
func Lift() []detector.HandLandmarks {
	return []detector.HandLandmarks{detector.FistLandmarks()}
}
