// Package metrics reduces a stream of render parameters to scalar figures.
package metrics

import "github.com/san-kum/rainfx/internal/rain"

type Metric interface {
	Name() string
	Observe(p rain.RenderParams)
	Value() float64
	Reset()
}

// Set fans frames out to its metrics. It satisfies rain.Observer so it can
// be attached to a loop with rain.WithObserver.
type Set []Metric

// Standard returns the metrics stored with every trace.
func Standard() Set {
	return Set{
		NewMeanRain(),
		NewPeakRain(),
		NewShare("decreasing_share", func(p rain.RenderParams) bool { return p.IsDecreasing }),
		NewShare("story_share", func(p rain.RenderParams) bool { return p.StoryActive }),
		NewPulses(),
	}
}

func (s Set) OnFrame(_ uint64, p rain.RenderParams) { s.Observe(p) }

func (s Set) Observe(p rain.RenderParams) {
	for _, m := range s {
		m.Observe(p)
	}
}

func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}
