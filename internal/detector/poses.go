package detector

// Preset hand poses for tests and for the classifier's own test suite.
// All poses are built in normalized image coordinates around a wrist
// anchor, with finger joints offset the way MediaPipe reports a hand held
// upright facing the camera.

// DefaultWrist is the anchor used by the named pose constructors.
var DefaultWrist = Point3D{X: 0.5, Y: 0.8, Z: 0}

// fingerChain holds the four joint offsets of one finger, base to tip,
// relative to the wrist.
type fingerChain [4]Point3D

// Joint offsets for fingers held straight up and splayed.
var extendedChains = [5]fingerChain{
	{{X: 0.05, Y: -0.05, Z: 0.02}, {X: 0.12, Y: -0.10, Z: 0.03}, {X: 0.18, Y: -0.15, Z: 0.03}, {X: 0.23, Y: -0.20, Z: 0.03}}, // thumb, sideways
	{{X: 0.05, Y: -0.12}, {X: 0.07, Y: -0.25}, {X: 0.08, Y: -0.35}, {X: 0.08, Y: -0.45}},                                     // index
	{{X: 0.00, Y: -0.14}, {X: 0.00, Y: -0.28}, {X: 0.00, Y: -0.40}, {X: 0.00, Y: -0.52}},                                     // middle
	{{X: -0.05, Y: -0.12}, {X: -0.07, Y: -0.25}, {X: -0.08, Y: -0.35}, {X: -0.08, Y: -0.45}},                                 // ring
	{{X: -0.10, Y: -0.10}, {X: -0.13, Y: -0.20}, {X: -0.15, Y: -0.30}, {X: -0.16, Y: -0.38}},                                 // pinky
}

// Joint offsets for fingers curled into the palm.
var curledChains = [5]fingerChain{
	{{X: 0.05, Y: -0.04}, {X: 0.06, Y: -0.08}, {X: 0.04, Y: -0.10}, {X: 0.00, Y: -0.10}}, // thumb
	{{X: 0.05, Y: -0.10, Z: -0.02}, {X: 0.05, Y: -0.12, Z: -0.05}, {X: 0.02, Y: -0.10, Z: -0.04}, {X: 0.00, Y: -0.08, Z: -0.02}},
	{{X: 0.00, Y: -0.12, Z: -0.02}, {X: 0.00, Y: -0.14, Z: -0.05}, {X: -0.03, Y: -0.12, Z: -0.04}, {X: -0.05, Y: -0.10, Z: -0.02}},
	{{X: -0.05, Y: -0.10, Z: -0.02}, {X: -0.05, Y: -0.12, Z: -0.05}, {X: -0.08, Y: -0.10, Z: -0.04}, {X: -0.10, Y: -0.08, Z: -0.02}},
	{{X: -0.10, Y: -0.08, Z: -0.02}, {X: -0.10, Y: -0.10, Z: -0.05}, {X: -0.13, Y: -0.08, Z: -0.04}, {X: -0.13, Y: -0.06, Z: -0.02}},
}

// Thumb pointing below the wrist, used by the thumbs-down pose.
var thumbDownChain = fingerChain{
	{X: 0.05, Y: 0.02}, {X: 0.10, Y: 0.06}, {X: 0.14, Y: 0.12}, {X: 0.18, Y: 0.18},
}

// fingerBase maps finger number (0=thumb..4=pinky) to the index of its
// first joint in the landmark array.
var fingerBase = [5]int{ThumbCMC, IndexMCP, MiddleMCP, RingMCP, PinkyMCP}

// LandmarksAt builds a hand at the given wrist with the given fingers
// extended (thumb, index, middle, ring, pinky).
func LandmarksAt(wrist Point3D, extended [5]bool) HandLandmarks {
	lm := HandLandmarks{Handedness: "Right", Score: 0.95}
	lm.Points[Wrist] = wrist

	for f := 0; f < 5; f++ {
		chain := curledChains[f]
		if extended[f] {
			chain = extendedChains[f]
		}
		for j, off := range chain {
			lm.Points[fingerBase[f]+j] = Point3D{
				X: wrist.X + off.X,
				Y: wrist.Y + off.Y,
				Z: wrist.Z + off.Z,
			}
		}
	}
	return lm
}

// FistLandmarks returns a closed fist (zero extended fingers).
func FistLandmarks() HandLandmarks {
	return LandmarksAt(DefaultWrist, [5]bool{})
}

// CountLandmarks returns a hand showing n fingers, 0 through 5, using the
// finger order a person naturally counts with: index, then middle, ring,
// pinky, and finally the thumb.
func CountLandmarks(n int) HandLandmarks {
	var extended [5]bool
	order := []int{1, 2, 3, 4, 0}
	for i := 0; i < n && i < 5; i++ {
		extended[order[i]] = true
	}
	return LandmarksAt(DefaultWrist, extended)
}

// OpenPalmLandmarks returns a hand with all five fingers extended.
func OpenPalmLandmarks() HandLandmarks {
	return CountLandmarks(5)
}

// ThumbsUpLandmarks returns a thumbs-up: thumb extended above the wrist,
// all other fingers curled.
func ThumbsUpLandmarks() HandLandmarks {
	lm := LandmarksAt(DefaultWrist, [5]bool{true, false, false, false, false})
	// Raise the thumb so the tip sits well above the wrist.
	lm.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75}
	lm.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.65}
	lm.Points[ThumbIP] = Point3D{X: 0.58, Y: 0.50}
	lm.Points[ThumbTip] = Point3D{X: 0.58, Y: 0.35}
	return lm
}

// ThumbsDownLandmarks returns a thumbs-down: thumb extended below the
// wrist, all other fingers curled.
func ThumbsDownLandmarks() HandLandmarks {
	lm := LandmarksAt(DefaultWrist, [5]bool{})
	for j, off := range thumbDownChain {
		lm.Points[ThumbCMC+j] = Point3D{
			X: DefaultWrist.X + off.X,
			Y: DefaultWrist.Y + off.Y,
		}
	}
	return lm
}

// PinkyOnlyLandmarks returns a hand with only the pinky extended.
func PinkyOnlyLandmarks() HandLandmarks {
	return LandmarksAt(DefaultWrist, [5]bool{false, false, false, false, true})
}

// LShapeLandmarks returns a hand with thumb and index extended (an "L").
func LShapeLandmarks() HandLandmarks {
	return LandmarksAt(DefaultWrist, [5]bool{true, true, false, false, false})
}

// VShapeLandmarks returns a hand with index and middle extended (a "V").
func VShapeLandmarks() HandLandmarks {
	return LandmarksAt(DefaultWrist, [5]bool{false, true, true, false, false})
}

// CrossedIndexLandmarks returns two hands whose index fingers cross in an
// "X" near the center of the frame, with all other fingers curled.
func CrossedIndexLandmarks() []HandLandmarks {
	left := LandmarksAt(Point3D{X: 0.38, Y: 0.82}, [5]bool{})
	left.Handedness = "Left"
	left.Points[IndexMCP] = Point3D{X: 0.40, Y: 0.60}
	left.Points[IndexPIP] = Point3D{X: 0.44, Y: 0.54}
	left.Points[IndexDIP] = Point3D{X: 0.48, Y: 0.50}
	left.Points[IndexTip] = Point3D{X: 0.52, Y: 0.47}

	right := LandmarksAt(Point3D{X: 0.62, Y: 0.82}, [5]bool{})
	right.Points[IndexMCP] = Point3D{X: 0.60, Y: 0.60}
	right.Points[IndexPIP] = Point3D{X: 0.56, Y: 0.54}
	right.Points[IndexDIP] = Point3D{X: 0.52, Y: 0.50}
	right.Points[IndexTip] = Point3D{X: 0.48, Y: 0.47}

	return []HandLandmarks{left, right}
}
