package gesture

import (
	"image"

	"github.com/ayusman/fingerdraw/internal/detector"
)

// PenState is the drawing state carried between frames.
type PenState int

const (
	// PenUp means no stroke is in progress.
	PenUp PenState = iota
	// PenDown means the previous frame showed an open hand and its
	// fingertip is the start of the next segment.
	PenDown
)

func (s PenState) String() string {
	switch s {
	case PenUp:
		return "up"
	case PenDown:
		return "down"
	default:
		return "unknown"
	}
}

// Observation is what one frame says about the hand.
type Observation struct {
	Present bool
	Open    bool
	Tip     image.Point
}

// Observe builds an Observation from the detector output for one frame,
// using the first hand. Tip is the index fingertip in pixel coordinates.
func Observe(hands []detector.HandLandmarks, width, height int) Observation {
	if len(hands) == 0 {
		return Observation{}
	}
	hand := &hands[0]
	return Observation{
		Present: true,
		Open:    IsOpen(hand),
		Tip:     hand.Pixel(detector.IndexTip, width, height),
	}
}

// Segment is a straight line to draw on the canvas.
type Segment struct {
	From image.Point
	To   image.Point
}

// Pen tracks pen-up/pen-down across frames. The zero value is a lifted pen.
type Pen struct {
	state PenState
	last  image.Point
}

// State returns the current pen state.
func (p *Pen) State() PenState {
	return p.state
}

// Last returns the previous draw point. ok is false while the pen is up.
func (p *Pen) Last() (pt image.Point, ok bool) {
	if p.state != PenDown {
		return image.Point{}, false
	}
	return p.last, true
}

// Update applies one frame's observation. It returns a segment only when
// the hand was open in both the previous and the current frame; the
// first open frame after the pen was up just seeds the start point.
func (p *Pen) Update(obs Observation) (Segment, bool) {
	if !obs.Present || !obs.Open {
		p.Lift()
		return Segment{}, false
	}

	if p.state == PenUp {
		p.state = PenDown
		p.last = obs.Tip
		return Segment{}, false
	}

	seg := Segment{From: p.last, To: obs.Tip}
	p.last = obs.Tip
	return seg, true
}

// Lift puts the pen up and forgets the previous point.
func (p *Pen) Lift() {
	p.state = PenUp
	p.last = image.Point{}
}
