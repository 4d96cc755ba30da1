package rain

// Phase is the decrease/story mode: exactly one of [Clear], [Held] or [Story].
type Phase interface {
	isPhase()
}

// Clear is the resting phase.
type Clear struct{}

// Held is the decrease-hold window that began at Since.
type Held struct {
	Since float64
}

// Story is the terminal mode reached at zero intensity. When it was entered
// by a decrease the hold is still tracked so it expires on schedule, but
// Story takes rendering precedence over it.
type Story struct {
	Holding   bool
	HeldSince float64
}

func (Clear) isPhase() {}
func (Held) isPhase()  {}
func (Story) isPhase() {}

// holdStart reports the start of a live hold in ph, if any.
func holdStart(ph Phase) (float64, bool) {
	switch ph := ph.(type) {
	case Held:
		return ph.Since, true
	case Story:
		return ph.HeldSince, ph.Holding
	}
	return 0, false
}

// holdExpired reports whether now has reached the hold's end time.
func holdExpired(since, now, hold float64) bool {
	return now >= since+hold
}
