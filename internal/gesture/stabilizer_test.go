package gesture

import (
	"math"
	"testing"
)

func observeN(s *Stabilizer, c Classification, n int) *Confirmed {
	var last *Confirmed
	for i := 0; i < n; i++ {
		last = s.Observe(c)
	}
	return last
}

func TestStabilizerConfirmsAtThreshold(t *testing.T) {
	s := NewStabilizer(10, 0.70)
	if got := s.Threshold(); got != 7 {
		t.Fatalf("Threshold = %d, want 7", got)
	}

	c := Classification{Label: Digit5, Confidence: 0.9}
	if confirmed := observeN(s, c, 6); confirmed != nil {
		t.Fatalf("confirmed after 6 frames: %+v", confirmed)
	}

	confirmed := s.Observe(c)
	if confirmed == nil {
		t.Fatal("no confirmation after 7 agreeing frames")
	}
	if confirmed.Label != Digit5 {
		t.Errorf("label = %v, want %v", confirmed.Label, Digit5)
	}
}

func TestStabilizerIgnoresNone(t *testing.T) {
	s := NewStabilizer(10, 0.70)

	// None frames fill the window but never confirm.
	if confirmed := observeN(s, Classification{Label: None}, 20); confirmed != nil {
		t.Fatalf("None frames confirmed: %+v", confirmed)
	}
}

func TestStabilizerEvictsOldest(t *testing.T) {
	s := NewStabilizer(10, 0.70)

	observeN(s, Classification{Label: Add, Confidence: 0.98}, 10)

	// Four empty frames push the count of Add down to 6, below the
	// threshold of 7.
	var confirmed *Confirmed
	for i := 0; i < 4; i++ {
		confirmed = s.Observe(Classification{Label: None})
	}
	if confirmed != nil {
		t.Errorf("confirmed after eviction: %+v", confirmed)
	}
}

func TestStabilizerReemitsWhileHeld(t *testing.T) {
	s := NewStabilizer(10, 0.70)
	c := Classification{Label: Digit1, Confidence: 1.0}

	observeN(s, c, 7)
	for i := 0; i < 5; i++ {
		if confirmed := s.Observe(c); confirmed == nil {
			t.Fatalf("held gesture not re-confirmed on frame %d", 8+i)
		}
	}
}

func TestStabilizerRecencyTieBreak(t *testing.T) {
	// Fraction 0.4 of 10 frames gives a threshold of 4, low enough for
	// two labels to qualify at once.
	s := NewStabilizer(10, 0.4)

	observeN(s, Classification{Label: Digit1, Confidence: 1.0}, 4)
	confirmed := observeN(s, Classification{Label: Digit2, Confidence: 1.0}, 4)
	if confirmed == nil {
		t.Fatal("no confirmation with two qualifying labels")
	}
	if confirmed.Label != Digit2 {
		t.Errorf("label = %v, want most recent %v", confirmed.Label, Digit2)
	}
}

func TestStabilizerMeanConfidence(t *testing.T) {
	s := NewStabilizer(10, 0.70)

	confidences := []float64{0.9, 0.8, 1.0, 0.7, 0.95, 0.85, 0.9}
	var confirmed *Confirmed
	for _, conf := range confidences {
		confirmed = s.Observe(Classification{Label: Equals, Confidence: conf})
	}
	if confirmed == nil {
		t.Fatal("no confirmation after 7 agreeing frames")
	}

	var sum float64
	for _, conf := range confidences {
		sum += conf
	}
	want := sum / float64(len(confidences))
	if math.Abs(confirmed.Confidence-want) > 1e-12 {
		t.Errorf("confidence = %v, want %v", confirmed.Confidence, want)
	}
}

func TestStabilizerReset(t *testing.T) {
	s := NewStabilizer(10, 0.70)
	c := Classification{Label: Digit4, Confidence: 1.0}

	observeN(s, c, 6)
	s.Reset()

	// The six buffered frames are gone; six more still do not confirm.
	if confirmed := observeN(s, c, 6); confirmed != nil {
		t.Errorf("confirmed after reset: %+v", confirmed)
	}
}
