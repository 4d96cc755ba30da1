package rain

import "math"

// Pulse is the Idle/Active pulse generator. The zero value is idle.
type Pulse struct {
	Start     float64
	Amplitude float64
	Active    bool
}

// Trigger starts a new pulse at now, replacing any active one.
func (p *Pulse) Trigger(now, amplitude float64) {
	p.Start = now
	p.Amplitude = amplitude
	p.Active = true
}

func (p *Pulse) Reset() { *p = Pulse{} }

// Progress returns the normalized progress at now and whether the pulse is
// still running. A pulse that has reached the end reports (1, false).
func (p Pulse) Progress(now, duration float64) (float64, bool) {
	if !p.Active {
		return 0, false
	}
	if duration <= 0 {
		return 1, false
	}
	prog := clamp01((now - p.Start) / duration)
	return prog, prog < 1
}

// Gain is the additive intensity contributed at now.
func (p Pulse) Gain(now, duration float64) float64 {
	prog, ok := p.Progress(now, duration)
	if !ok {
		return 0
	}
	return PulseGain(prog, p.Amplitude)
}

// PulseGain evaluates sin(pi*p)*amplitude, exactly zero at both ends.
func PulseGain(p, amplitude float64) float64 {
	if p <= 0 || p >= 1 {
		return 0
	}
	return math.Sin(math.Pi*p) * amplitude
}
