package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestMotionDetectorNoMotion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	md := NewMotionDetector(1.0)
	defer md.Close()

	frame1 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame1.Close()
	frame2 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame2.Close()

	// The first frame primes the baseline.
	detected, percent := md.Detect(&frame1)
	if detected {
		t.Error("first frame reported motion")
	}
	if percent != 0 {
		t.Errorf("first frame changed %f%%, want 0", percent)
	}

	// An identical second frame is still.
	if detected, percent = md.Detect(&frame2); detected {
		t.Errorf("identical frames reported motion, %f%% changed", percent)
	}
}

func TestMotionDetectorWithMotion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	md := NewMotionDetector(1.0)
	defer md.Close()

	black := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer black.Close()
	white := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer white.Close()
	white.SetTo(gocv.NewScalar(255, 255, 255, 0))

	md.Detect(&black)

	detected, percent := md.Detect(&white)
	if !detected {
		t.Errorf("black to white reported no motion, %f%% changed", percent)
	}
	if percent < 50.0 {
		t.Errorf("black to white changed %f%%, want > 50", percent)
	}
}

func TestMotionDetectorReset(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	md := NewMotionDetector(1.0)
	defer md.Close()

	white := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer white.Close()
	white.SetTo(gocv.NewScalar(255, 255, 255, 0))

	black := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer black.Close()

	md.Detect(&black)
	md.Reset()

	// After a reset the next frame re-primes the baseline instead of
	// comparing against the stale one.
	if detected, percent := md.Detect(&white); detected {
		t.Errorf("priming frame after reset reported motion, %f%% changed", percent)
	}
}

func TestMotionDetectorNilFrame(t *testing.T) {
	md := NewMotionDetector(1.0)
	defer md.Close()

	if detected, percent := md.Detect(nil); detected || percent != 0 {
		t.Errorf("Detect(nil) = %v/%f, want false/0", detected, percent)
	}
}
