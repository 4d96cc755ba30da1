package scenario

import "sort"

func f(v float64) *float64 { return &v }

// Builtin returns the scenarios shipped with the binary.
func Builtin() map[string]*Scenario {
	return map[string]*Scenario{
		"decrease": {
			Name:        "decrease",
			Description: "slider 0.7 -> 0.3 at t=10, hold until t=13",
			FPS:         10,
			Duration:    15,
			Level:       f(0.7),
			Steps:       []Step{{At: 10, Slider: f(0.3)}},
		},
		"story": {
			Name:        "story",
			Description: "slider 0.3 -> 0 at t=20, story mode from then on",
			FPS:         10,
			Duration:    26,
			Level:       f(0.3),
			Steps:       []Step{{At: 20, Slider: f(0)}},
		},
		"recover": {
			Name:        "recover",
			Description: "slider 0 -> 0.5 at t=30 leaves story immediately",
			FPS:         10,
			Duration:    32,
			Level:       f(0),
			Steps:       []Step{{At: 30, Slider: f(0.5)}},
		},
		"double-decrease": {
			Name:        "double-decrease",
			Description: "two decreases inside one hold window restart the timer",
			FPS:         10,
			Duration:    6,
			Level:       f(0.6),
			Steps: []Step{
				{At: 0, Slider: f(0.4)},
				{At: 1, Slider: f(0.2)},
			},
		},
		"wipe": {
			Name:        "wipe",
			Description: "press, drag and release across the surface",
			FPS:         30,
			Duration:    3,
			Level:       f(0.8),
			Steps: []Step{
				{At: 0.5, Pointer: &PointerStep{X: 100, Y: 100, Down: true}},
				{At: 1.0, Pointer: &PointerStep{X: 400, Y: 300, Down: true, Move: true}},
				{At: 1.5, Pointer: &PointerStep{X: 600, Y: 300}},
				{At: 2.0, Pointer: &PointerStep{X: 700, Y: 500, Move: true}},
				{At: 2.5, Resize: &ResizeStep{Width: 1920, Height: 1080, PixelRatio: 2}},
			},
		},
	}
}

func Names() []string {
	names := make([]string, 0, len(Builtin()))
	for k := range Builtin() {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
