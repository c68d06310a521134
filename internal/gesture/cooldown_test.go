package gesture

import "testing"

func TestCooldownGateAdmitsWhenIdle(t *testing.T) {
	g := NewCooldownGate(25)

	if !g.Admit(Confirmed{Label: Digit1}) {
		t.Fatal("Admit on idle gate = false")
	}
	if got := g.Remaining(); got != 25 {
		t.Errorf("Remaining after admit = %d, want 25", got)
	}
}

func TestCooldownGateWindow(t *testing.T) {
	g := NewCooldownGate(25)
	g.Admit(Confirmed{Label: Digit1})

	// One tick per frame: frames 1 through 24 after the admission are
	// still inside the window.
	for frame := 1; frame < 25; frame++ {
		g.Tick()
		if g.Admit(Confirmed{Label: Digit2}) {
			t.Fatalf("Admit on frame %d = true, want rejection", frame)
		}
	}

	// Frame 25 after the admission is open again.
	g.Tick()
	if !g.Admit(Confirmed{Label: Digit2}) {
		t.Fatal("Admit after full cooldown = false")
	}
	if got := g.Remaining(); got != 25 {
		t.Errorf("Remaining after re-arm = %d, want 25", got)
	}
}

func TestCooldownGateZeroFrames(t *testing.T) {
	g := NewCooldownGate(0)
	for i := 0; i < 3; i++ {
		g.Tick()
		if !g.Admit(Confirmed{Label: Equals}) {
			t.Fatalf("Admit %d with zero cooldown = false", i+1)
		}
	}
}
