// Package gesture interprets hand landmarks as drawing input: whether the
// hand is open, and how the pen moves from frame to frame.
package gesture

import "github.com/ayusman/fingerdraw/internal/detector"

// MinExtendedFingers is how many of the four non-thumb fingers must be
// extended for the hand to count as open.
const MinExtendedFingers = 3

// fingerJoints pairs each non-thumb fingertip with its PIP joint.
var fingerJoints = [4][2]int{
	{detector.IndexTip, detector.IndexPIP},
	{detector.MiddleTip, detector.MiddlePIP},
	{detector.RingTip, detector.RingPIP},
	{detector.PinkyTip, detector.PinkyPIP},
}

// ExtendedFingers counts fingers whose tip is above (smaller y than) the
// PIP joint. The thumb is ignored. This assumes an upright hand; a
// rotated or inverted hand reads as closed.
func ExtendedFingers(hand *detector.HandLandmarks) int {
	n := 0
	for _, j := range fingerJoints {
		if hand.Points[j[0]].Y < hand.Points[j[1]].Y {
			n++
		}
	}
	return n
}

// IsOpen reports whether at least MinExtendedFingers fingers are extended.
func IsOpen(hand *detector.HandLandmarks) bool {
	return ExtendedFingers(hand) >= MinExtendedFingers
}
