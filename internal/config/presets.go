package config

import "sort"

var Presets = map[string]*Config{
	"drizzle": {
		Level: 0.25, FPS: 30, Theme: "dusk",
		Timing: TimingConfig{PulseDuration: 1.2, HoldDuration: 3.0, DecreaseBias: 0.3},
	},
	"storm": {
		Level: 0.95, FPS: 60, Theme: "storm",
		Timing: TimingConfig{PulseDuration: 0.6, HoldDuration: 2.0, DecreaseBias: 0.6},
	},
	"story": {
		Level: 0.0, FPS: 30, Theme: "night",
		Timing: TimingConfig{PulseDuration: 0.9, HoldDuration: 3.0, DecreaseBias: 0.5},
	},
}

// GetPreset returns a copy of the named preset with unset fields filled from
// the defaults, or nil when no such preset exists.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Level = p.Level
	if p.FPS > 0 {
		cfg.FPS = p.FPS
	}
	if p.Theme != "" {
		cfg.Theme = p.Theme
	}
	cfg.Timing = p.Timing
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for k := range Presets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
