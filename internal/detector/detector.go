package detector

import "gocv.io/x/gocv"

// Detector defines the interface for hand detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns detected hand landmarks.
	// Returns an empty slice if no hands are detected.
	Detect(frame *gocv.Mat) ([]HandLandmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection. The confidence
// minimums are forwarded to the external landmark service.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 2).
	MaxHands int `mapstructure:"max_hands"`

	// MinDetectionConfidence is the minimum confidence to report a hand (0.0-1.0).
	MinDetectionConfidence float64 `mapstructure:"min_detection_confidence"`

	// MinTrackingConfidence is the minimum confidence to keep tracking a hand
	// between frames (0.0-1.0).
	MinTrackingConfidence float64 `mapstructure:"min_tracking_confidence"`
}

// DefaultConfig returns a Config with the detection thresholds the
// calculator was tuned against.
func DefaultConfig() Config {
	return Config{
		MaxHands:               2,
		MinDetectionConfidence: 0.8,
		MinTrackingConfidence:  0.8,
	}
}
