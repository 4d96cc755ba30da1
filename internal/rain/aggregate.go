package rain

import "math"

// Aggregate computes the frame parameters for s at now. It does not modify s
// and returns the same result for the same inputs.
//
// Story overrides the base intensity with zero. A live decrease hold scales
// the base down by DecreaseBias, easing back to the committed level as the
// hold runs out. Pulse gain is added last and the sum clamped to [0,1].
func Aggregate(s State, now float64, p Params) RenderParams {
	out := RenderParams{
		DisableSecondaryEffect: s.DisableSecondaryEffect,
		SpeedMultiplier:        math.Max(s.SpeedMultiplier, MinSpeed),
		Pointer:                s.Pointer,
		Viewport:               s.Viewport,
		ElapsedTime:            now,
	}
	if math.IsNaN(s.SpeedMultiplier) {
		out.SpeedMultiplier = MinSpeed
	}

	base := s.RainLevel
	switch ph := s.Phase.(type) {
	case Story:
		base = 0
		out.StoryActive = true
		out.DisableSecondaryEffect = true
	case Held:
		if holdExpired(ph.Since, now, p.HoldDuration) {
			out.DisableSecondaryEffect = false
			break
		}
		remaining := 1 - clamp01((now-ph.Since)/p.HoldDuration)
		base *= 1 - p.DecreaseBias*remaining
		out.IsDecreasing = true
	}

	if prog, running := s.Pulse.Progress(now, p.PulseDuration); running {
		out.PulseProgress = prog
		out.PulseAmplitude = s.Pulse.Amplitude
		base += PulseGain(prog, s.Pulse.Amplitude)
	}

	out.RainAmount = clamp01(base)
	return out
}
