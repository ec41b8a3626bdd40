package detector

import "gocv.io/x/gocv"

// Detector defines the interface for hand landmark detection.
type Detector interface {
	// Detect analyzes a video frame and returns detected hand landmarks.
	// Returns an empty slice if no hands are detected.
	Detect(frame *gocv.Mat) ([]HandLandmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect.
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64

	// StaticImageMode runs full detection on every frame instead of tracking.
	StaticImageMode bool

	// PythonPath and ScriptPath override interpreter and service discovery.
	PythonPath string
	ScriptPath string
}

// DefaultConfig returns the settings used for single-hand drawing:
// one hand, streaming mode, 0.7 detection and tracking confidence.
func DefaultConfig() Config {
	return Config{
		MaxHands:        1,
		MinConfidence:   0.7,
		MinTrackingConf: 0.7,
		StaticImageMode: false,
	}
}
