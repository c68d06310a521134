package gesture

// CooldownGate enforces a quiet period after an accepted gesture. Without
// it a physical pose held steady would re-trigger the stabilization
// window's threshold on every subsequent frame, causing runaway repeated
// actions.
type CooldownGate struct {
	frames    int
	remaining int
}

// NewCooldownGate creates a gate that rejects confirmations for the given
// number of frames after each admitted one.
func NewCooldownGate(frames int) *CooldownGate {
	if frames < 0 {
		frames = 0
	}
	return &CooldownGate{frames: frames}
}

// Tick advances the gate by one frame. It must be called once per frame
// whether or not a gesture was observed.
func (g *CooldownGate) Tick() {
	if g.remaining > 0 {
		g.remaining--
	}
}

// Admit reports whether the confirmed gesture may be forwarded. Admitting
// re-arms the countdown; while it runs every confirmation is rejected.
func (g *CooldownGate) Admit(c Confirmed) bool {
	if g.remaining > 0 {
		return false
	}
	g.remaining = g.frames
	return true
}

// Remaining returns the frames left before the next gesture is admitted.
func (g *CooldownGate) Remaining() int { return g.remaining }
