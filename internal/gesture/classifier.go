package gesture

import (
	"github.com/ayusman/mudra/internal/detector"
)

// Classifier maps one frame's hand observations to a Classification. It is
// a pure function of its input and tolerances: no hidden state, identical
// landmarks always produce the identical result.
type Classifier struct {
	tol Tolerances
}

// NewClassifier creates a Classifier with the given tolerances.
func NewClassifier(tol Tolerances) *Classifier {
	return &Classifier{tol: tol}
}

// orientation constrains a single-hand pattern beyond its finger bitset.
type orientation int

const (
	orientAny orientation = iota
	orientThumbUp
	orientThumbDown
)

// singleEntry is one row of the single-hand gesture table: the finger
// bitsets that match, an optional orientation constraint, the resulting
// label, and the pattern's base confidence.
type singleEntry struct {
	label  Label
	masks  []fingerSet
	orient orientation
	base   float64
}

// Single-hand gesture table. Digit patterns come first: when geometry is
// consistent with both a digit and a control gesture, the digit wins.
var singleTable = []singleEntry{
	{label: Digit0, masks: []fingerSet{0}, base: 1.0},
	{label: Digit1, masks: []fingerSet{fIndex}, base: 1.0},
	{label: Digit2, masks: []fingerSet{fIndex | fMiddle}, base: 1.0},
	{label: Digit3, masks: []fingerSet{fIndex | fMiddle | fRing, fThumb | fIndex | fMiddle}, base: 1.0},
	{label: Digit4, masks: []fingerSet{fIndex | fMiddle | fRing | fPinky}, base: 1.0},
	{label: Digit5, masks: []fingerSet{fAll}, base: 1.0},
	{label: Equals, masks: []fingerSet{fThumb}, orient: orientThumbUp, base: 1.0},
	{label: Clear, masks: []fingerSet{fThumb}, orient: orientThumbDown, base: 0.95},
	{label: Add, masks: []fingerSet{fThumb | fIndex}, base: 0.98},
	{label: Delete, masks: []fingerSet{fPinky}, base: 0.95},
}

// Classify maps the frame's hand observations (0, 1 or 2 hands) to a
// gesture. Malformed observations are discarded up front; no usable hands
// yields None with confidence 0.
func (c *Classifier) Classify(hands []detector.HandLandmarks) Classification {
	valid := make([]*detector.HandLandmarks, 0, 2)
	for i := range hands {
		if hands[i].Valid() {
			valid = append(valid, &hands[i])
		}
		if len(valid) == 2 {
			break
		}
	}

	switch len(valid) {
	case 1:
		return c.classifyOne(analyzeHand(valid[0], c.tol))
	case 2:
		return c.classifyTwo(analyzeHand(valid[0], c.tol), analyzeHand(valid[1], c.tol))
	default:
		return Classification{Label: None, Confidence: 0}
	}
}

func (c *Classifier) classifyOne(s handShape) Classification {
	for _, e := range singleTable {
		if !maskIn(s.mask, e.masks) {
			continue
		}
		switch e.orient {
		case orientThumbUp:
			if !thumbAbove(s.hand, c.tol) {
				continue
			}
		case orientThumbDown:
			if !thumbBelow(s.hand, c.tol) {
				continue
			}
		}
		return Classification{Label: e.label, Confidence: e.base * s.confidence()}
	}
	return Classification{Label: None, Confidence: 0}
}

func (c *Classifier) classifyTwo(a, b handShape) Classification {
	conf := (a.confidence() + b.confidence()) / 2
	ca, cb := a.mask.count(), b.mask.count()

	// Digits 6-9: one full open hand plus 1-4 on the other.
	if ca == 5 && cb >= 1 && cb <= 4 {
		return Classification{Label: DigitLabel(5 + cb), Confidence: 0.95 * conf}
	}
	if cb == 5 && ca >= 1 && ca <= 4 {
		return Classification{Label: DigitLabel(5 + ca), Confidence: 0.95 * conf}
	}

	if crossedIndexes(a.hand, b.hand, c.tol) {
		return Classification{Label: Multiply, Confidence: 0.95 * conf}
	}

	// Two closed fists.
	if a.mask == 0 && b.mask == 0 {
		return Classification{Label: Subtract, Confidence: 0.95 * conf}
	}

	// Two V-signs.
	if a.mask == fIndex|fMiddle && b.mask == fIndex|fMiddle {
		return Classification{Label: Divide, Confidence: 0.95 * conf}
	}

	// Two open palms.
	if a.mask == fAll && b.mask == fAll {
		return Classification{Label: Clear, Confidence: 0.9 * conf}
	}

	// One idle hand in frame: classify the posed one alone.
	if ca == 0 && cb > 0 {
		return c.classifyOne(b)
	}
	if cb == 0 && ca > 0 {
		return c.classifyOne(a)
	}

	return Classification{Label: None, Confidence: 0}
}

func maskIn(m fingerSet, masks []fingerSet) bool {
	for _, candidate := range masks {
		if m == candidate {
			return true
		}
	}
	return false
}
