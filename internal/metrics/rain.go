package metrics

import (
	"math"

	"github.com/san-kum/rainfx/internal/rain"
)

type MeanRain struct {
	name    string
	total   float64
	samples int
}

func NewMeanRain() *MeanRain {
	return &MeanRain{name: "mean_rain"}
}

func (m *MeanRain) Name() string { return m.name }

func (m *MeanRain) Observe(p rain.RenderParams) {
	m.total += p.RainAmount
	m.samples++
}

func (m *MeanRain) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanRain) Reset() {
	m.total = 0
	m.samples = 0
}

type PeakRain struct {
	name string
	peak float64
}

func NewPeakRain() *PeakRain {
	return &PeakRain{name: "peak_rain"}
}

func (m *PeakRain) Name() string { return m.name }

func (m *PeakRain) Observe(p rain.RenderParams) {
	m.peak = math.Max(m.peak, p.RainAmount)
}

func (m *PeakRain) Value() float64 { return m.peak }
func (m *PeakRain) Reset()         { m.peak = 0 }

// Pulses counts pulse onsets. A pulse that is retriggered before it ends
// shows up as its progress falling back and counts again.
type Pulses struct {
	name  string
	last  float64
	count int
}

func NewPulses() *Pulses {
	return &Pulses{name: "pulses"}
}

func (m *Pulses) Name() string { return m.name }

func (m *Pulses) Observe(p rain.RenderParams) {
	cur := p.PulseProgress
	if cur > 0 && (m.last == 0 || cur < m.last) {
		m.count++
	}
	m.last = cur
}

func (m *Pulses) Value() float64 { return float64(m.count) }

func (m *Pulses) Reset() {
	m.last = 0
	m.count = 0
}
