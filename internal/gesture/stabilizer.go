package gesture

import "math"

// Confirmed is a gesture that has persisted across enough recent frames
// to be trusted. Confidence is the mean confidence of the window entries
// carrying the winning label.
type Confirmed struct {
	Label      Label
	Confidence float64
}

// Stabilizer is a fixed-capacity sliding window over per-frame
// classifications. It suppresses single-frame misclassifications (motion
// blur, occlusion, transient hand shapes) by only confirming a label once
// it occupies enough of the window; latency stays bounded by the window
// size divided by the frame rate.
type Stabilizer struct {
	size      int
	threshold int
	window    []Classification
}

// NewStabilizer creates a window of the given size that confirms a label
// once it fills at least the given fraction of the window (count rounded
// up). size 10 and fraction 0.70 confirm on 7 of the last 10 frames.
func NewStabilizer(size int, fraction float64) *Stabilizer {
	if size < 1 {
		size = 1
	}
	threshold := int(math.Ceil(fraction * float64(size)))
	if threshold < 1 {
		threshold = 1
	}
	return &Stabilizer{
		size:      size,
		threshold: threshold,
		window:    make([]Classification, 0, size),
	}
}

// Observe appends one frame's classification, evicting the oldest entry
// when the window is full, and returns a confirmation if any non-None
// label now meets the threshold. While a pose is held the same label
// confirms again every frame; suppressing repeats is the cooldown gate's
// job, not the window's.
//
// When two labels both meet the threshold the one seen most recently
// wins, so ties resolve deterministically.
func (s *Stabilizer) Observe(c Classification) *Confirmed {
	if len(s.window) == s.size {
		copy(s.window, s.window[1:])
		s.window = s.window[:s.size-1]
	}
	s.window = append(s.window, c)

	counts := make(map[Label]int)
	for _, entry := range s.window {
		if entry.Label != None {
			counts[entry.Label]++
		}
	}

	// Walk newest to oldest so the first qualifying label is also the
	// most recently seen one.
	for i := len(s.window) - 1; i >= 0; i-- {
		label := s.window[i].Label
		if label == None || counts[label] < s.threshold {
			continue
		}
		return &Confirmed{Label: label, Confidence: s.meanConfidence(label)}
	}
	return nil
}

func (s *Stabilizer) meanConfidence(label Label) float64 {
	var sum float64
	var n int
	for _, entry := range s.window {
		if entry.Label == label {
			sum += entry.Confidence
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Reset clears the window.
func (s *Stabilizer) Reset() {
	s.window = s.window[:0]
}

// Size returns the window capacity.
func (s *Stabilizer) Size() int { return s.size }

// Threshold returns the occurrence count required to confirm a label.
func (s *Stabilizer) Threshold() int { return s.threshold }
