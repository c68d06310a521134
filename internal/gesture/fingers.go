package gesture

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// fingerSet is a bitset of extended fingers, thumb through pinky.
type fingerSet uint8

const (
	fThumb fingerSet = 1 << iota
	fIndex
	fMiddle
	fRing
	fPinky

	fAll = fThumb | fIndex | fMiddle | fRing | fPinky
)

func (s fingerSet) count() int {
	n := 0
	for b := s; b != 0; b &= b - 1 {
		n++
	}
	return n
}

// Tolerances holds the geometric thresholds the classifier evaluates
// against. Distances are in normalized image coordinates, ratios are
// dimensionless, angles are in degrees.
type Tolerances struct {
	// ThumbRatio: thumb is extended when its tip is this much farther
	// from the wrist than the IP joint.
	ThumbRatio float64 `mapstructure:"thumb_ratio"`

	// FingerRatio: a finger's tip must be this much farther from the
	// wrist than its MCP joint for the distance vote.
	FingerRatio float64 `mapstructure:"finger_ratio"`

	// FingerAngleDeg: minimum MCP-PIP-TIP straightness for the angle vote.
	FingerAngleDeg float64 `mapstructure:"finger_angle_deg"`

	// VerticalMargin: how far above its PIP joint a tip must sit for the
	// vertical vote.
	VerticalMargin float64 `mapstructure:"vertical_margin"`

	// ThumbMargin: how far above (below) the wrist the thumb tip must be
	// for a thumbs-up (thumbs-down) orientation.
	ThumbMargin float64 `mapstructure:"thumb_margin"`

	// Crossed-index ("X") validation.
	CrossAngleMinDeg    float64 `mapstructure:"cross_angle_min_deg"`
	CrossAngleMaxDeg    float64 `mapstructure:"cross_angle_max_deg"`
	CrossTipDistance    float64 `mapstructure:"cross_tip_distance"`
	CrossBaseSeparation float64 `mapstructure:"cross_base_separation"`
}

// DefaultTolerances returns the thresholds the gesture set was tuned with.
func DefaultTolerances() Tolerances {
	return Tolerances{
		ThumbRatio:          1.15,
		FingerRatio:         1.25,
		FingerAngleDeg:      140,
		VerticalMargin:      0.02,
		ThumbMargin:         0.03,
		CrossAngleMinDeg:    40,
		CrossAngleMaxDeg:    140,
		CrossTipDistance:    0.15,
		CrossBaseSeparation: 0.08,
	}
}

// handShape is the per-hand intermediate the classifier works from: which
// fingers are extended and how many of the five finger decisions were
// unambiguous (all extension tests agreed).
type handShape struct {
	mask        fingerSet
	unambiguous int
	hand        *detector.HandLandmarks
}

// confidence is the fraction of fingers whose state was unambiguous.
func (s handShape) confidence() float64 {
	return float64(s.unambiguous) / 5.0
}

// Per-finger landmark indices, thumb through pinky.
var (
	tipIDs = [5]int{detector.ThumbTip, detector.IndexTip, detector.MiddleTip, detector.RingTip, detector.PinkyTip}
	pipIDs = [5]int{detector.ThumbIP, detector.IndexPIP, detector.MiddlePIP, detector.RingPIP, detector.PinkyPIP}
	mcpIDs = [5]int{detector.ThumbMCP, detector.IndexMCP, detector.MiddleMCP, detector.RingMCP, detector.PinkyMCP}
)

// analyzeHand decides per finger whether it is extended.
//
// The thumb extends laterally, so it gets a single distance test: tip
// farther from the wrist than the IP joint by ThumbRatio. Each other
// finger is decided by a 2-of-3 vote between a vertical test (tip above
// PIP above MCP), a wrist-distance test, and a straightness test on the
// MCP-PIP-TIP angle. The vote keeps the decision stable under hand
// rotation and partial flexion.
func analyzeHand(h *detector.HandLandmarks, tol Tolerances) handShape {
	shape := handShape{hand: h}
	wrist := h.Points[detector.Wrist]

	thumbTip := h.Points[detector.ThumbTip]
	thumbIP := h.Points[detector.ThumbIP]
	if dist2(thumbTip, wrist) > dist2(thumbIP, wrist)*tol.ThumbRatio {
		shape.mask |= fThumb
	}
	shape.unambiguous++ // single decisive test

	for f := 1; f < 5; f++ {
		tip := h.Points[tipIDs[f]]
		pip := h.Points[pipIDs[f]]
		mcp := h.Points[mcpIDs[f]]

		votes := 0
		if tip.Y < pip.Y-tol.VerticalMargin && pip.Y < mcp.Y {
			votes++
		}
		if dist2(tip, wrist) > dist2(mcp, wrist)*tol.FingerRatio {
			votes++
		}
		if fingerAngle(mcp, pip, tip) > tol.FingerAngleDeg {
			votes++
		}

		if votes >= 2 {
			shape.mask |= fThumb << f
		}
		if votes == 0 || votes == 3 {
			shape.unambiguous++
		}
	}

	return shape
}

// thumbAbove reports whether the thumb tip sits clearly above the wrist.
func thumbAbove(h *detector.HandLandmarks, tol Tolerances) bool {
	return h.Points[detector.ThumbTip].Y < h.Points[detector.Wrist].Y-tol.ThumbMargin
}

// thumbBelow reports whether the thumb tip sits clearly below the wrist.
func thumbBelow(h *detector.HandLandmarks, tol Tolerances) bool {
	return h.Points[detector.ThumbTip].Y > h.Points[detector.Wrist].Y+tol.ThumbMargin
}

// crossedIndexes reports whether the two index fingers form an "X":
// crossing at an angle between the configured bounds, with tips
// converging near the midpoint between clearly separated bases.
func crossedIndexes(a, b *detector.HandLandmarks, tol Tolerances) bool {
	aBase := a.Points[detector.IndexMCP]
	aTip := a.Points[detector.IndexTip]
	bBase := b.Points[detector.IndexMCP]
	bTip := b.Points[detector.IndexTip]

	angle := vectorAngle(aTip.X-aBase.X, aTip.Y-aBase.Y, bTip.X-bBase.X, bTip.Y-bBase.Y)
	if angle <= tol.CrossAngleMinDeg || angle >= tol.CrossAngleMaxDeg {
		return false
	}

	if dist2(aTip, bTip) >= tol.CrossTipDistance {
		return false
	}

	baseSep := dist2(aBase, bBase)
	if baseSep <= tol.CrossBaseSeparation {
		return false
	}

	// Both tips must converge near the midpoint of the bases, otherwise
	// the fingers are merely pointing at each other without crossing.
	center := detector.Point3D{X: (aBase.X + bBase.X) / 2, Y: (aBase.Y + bBase.Y) / 2}
	return dist2(aTip, center) < baseSep*0.8 && dist2(bTip, center) < baseSep*0.8
}

// dist2 is the planar (x, y) distance between two landmarks. The depth
// estimate from the detector is too noisy to gate gestures on.
func dist2(a, b detector.Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// fingerAngle measures how straight a finger is: 180 means fully
// extended, 0 fully folded.
func fingerAngle(mcp, pip, tip detector.Point3D) float64 {
	return 180 - vectorAngle(pip.X-mcp.X, pip.Y-mcp.Y, tip.X-pip.X, tip.Y-pip.Y)
}

// vectorAngle returns the angle in degrees between two 2D vectors. A
// zero-length vector has no direction and reads as 0.
func vectorAngle(x1, y1, x2, y2 float64) float64 {
	n1 := math.Sqrt(x1*x1 + y1*y1)
	n2 := math.Sqrt(x2*x2 + y2*y2)
	if n1 == 0 || n2 == 0 {
		return 0
	}
	cos := (x1*x2 + y1*y2) / (n1 * n2)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}
