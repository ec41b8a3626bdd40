package gesture

import (
	"testing"

	"github.com/ayusman/fingerdraw/internal/detector"
)

// handWithFingers builds an upright hand where the first n of index,
// middle, ring and pinky are extended and the rest are curled.
func handWithFingers(extended [4]bool) detector.HandLandmarks {
	var hand detector.HandLandmarks
	for i, j := range fingerJoints {
		hand.Points[j[1]] = detector.Point3D{X: 0.5, Y: 0.5}
		if extended[i] {
			hand.Points[j[0]] = detector.Point3D{X: 0.5, Y: 0.3}
		} else {
			hand.Points[j[0]] = detector.Point3D{X: 0.5, Y: 0.6}
		}
	}
	return hand
}

func TestIsOpen(t *testing.T) {
	tests := []struct {
		name     string
		extended [4]bool
		wantN    int
		want     bool
	}{
		{name: "all four extended", extended: [4]bool{true, true, true, true}, wantN: 4, want: true},
		{name: "exactly three extended", extended: [4]bool{true, true, true, false}, wantN: 3, want: true},
		{name: "three without index", extended: [4]bool{false, true, true, true}, wantN: 3, want: true},
		{name: "two extended", extended: [4]bool{true, true, false, false}, wantN: 2, want: false},
		{name: "one extended", extended: [4]bool{true, false, false, false}, wantN: 1, want: false},
		{name: "none extended", extended: [4]bool{}, wantN: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand := handWithFingers(tt.extended)

			if got := ExtendedFingers(&hand); got != tt.wantN {
				t.Errorf("ExtendedFingers() = %d, want %d", got, tt.wantN)
			}
			if got := IsOpen(&hand); got != tt.want {
				t.Errorf("IsOpen() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsOpen_TipLevelWithJointIsNotExtended(t *testing.T) {
	hand := handWithFingers([4]bool{true, true, false, false})
	// Ring tip exactly level with its joint
	hand.Points[detector.RingTip].Y = hand.Points[detector.RingPIP].Y

	if ExtendedFingers(&hand) != 2 {
		t.Errorf("tip level with joint must not count as extended")
	}
	if IsOpen(&hand) {
		t.Error("IsOpen() = true, want false")
	}
}

func TestIsOpen_IgnoresThumb(t *testing.T) {
	hand := handWithFingers([4]bool{true, true, false, false})
	hand.Points[detector.ThumbTip] = detector.Point3D{X: 0.5, Y: 0.0}
	hand.Points[detector.ThumbIP] = detector.Point3D{X: 0.5, Y: 0.9}

	if IsOpen(&hand) {
		t.Error("an extended thumb must not open the hand")
	}
}

func TestIsOpen_UpsideDownHandReadsClosed(t *testing.T) {
	hand := handWithFingers([4]bool{true, true, true, true})
	for i := range hand.Points {
		hand.Points[i].Y = 1 - hand.Points[i].Y
	}

	if IsOpen(&hand) {
		t.Error("an inverted open hand is expected to read as closed")
	}
}

func TestIsOpen_Presets(t *testing.T) {
	palm := detector.OpenPalmLandmarks()
	if !IsOpen(&palm) {
		t.Error("open palm preset should be open")
	}

	fist := detector.FistLandmarks()
	if IsOpen(&fist) {
		t.Error("fist preset should be closed")
	}
}
