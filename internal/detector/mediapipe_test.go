package detector

import "testing"

func TestJSONHandLandmarkCount(t *testing.T) {
	short := jsonHand{Points: make([]jsonPoint, 5), Handedness: "Right", Score: 0.9}
	if _, ok := short.toHandLandmarks(); ok {
		t.Error("hand with 5 landmarks accepted")
	}

	var empty jsonHand
	if _, ok := empty.toHandLandmarks(); ok {
		t.Error("hand with no landmarks accepted")
	}

	full := jsonHand{Points: make([]jsonPoint, NumLandmarks), Handedness: "Left", Score: 0.8}
	for i := range full.Points {
		full.Points[i] = jsonPoint{X: float64(i) * 0.01, Y: 0.5}
	}
	lm, ok := full.toHandLandmarks()
	if !ok {
		t.Fatal("hand with the full landmark set rejected")
	}
	if lm.Handedness != "Left" || lm.Score != 0.8 {
		t.Errorf("metadata = %q/%v, want Left/0.8", lm.Handedness, lm.Score)
	}
	if lm.Points[IndexTip].X != full.Points[IndexTip].X {
		t.Errorf("Points[IndexTip].X = %v, want %v", lm.Points[IndexTip].X, full.Points[IndexTip].X)
	}
}
