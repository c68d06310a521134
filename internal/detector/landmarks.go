// Package detector provides hand landmark types and detection interfaces
// for the Mudra gesture calculator.
package detector

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a single hand keypoint in normalized image
// coordinates (x and y in [0,1], z is relative depth).
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks of one detected hand,
// produced once per hand per frame. Immutable once produced.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Valid reports whether the observation is usable for classification.
// Observations containing NaN or infinite coordinates, or collapsed to a
// single point (the shape a partially-filled wire message decodes to),
// are rejected so that a glitching detector degrades to "no gesture"
// instead of propagating garbage geometry downstream.
func (h *HandLandmarks) Valid() bool {
	if h == nil {
		return false
	}
	spread := false
	for i := 0; i < NumLandmarks; i++ {
		p := h.Points[i]
		if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
			return false
		}
		if p != h.Points[Wrist] {
			spread = true
		}
	}
	return spread
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
