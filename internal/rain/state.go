package rain

import "math"

// State is the controller record. It is owned by one loop and mutated only
// by input handlers and [State.Advance], never concurrently.
type State struct {
	RainLevel              float64
	Pulse                  Pulse
	Phase                  Phase
	DisableSecondaryEffect bool
	SpeedMultiplier        float64
	Pointer                Pointer
	Viewport               Viewport
}

// NewState returns a state at rest at the given level. A level of zero
// starts in the story phase.
func NewState(level float64) State {
	s := State{
		RainLevel:       clamp01(level),
		Phase:           Clear{},
		SpeedMultiplier: 1,
	}
	if s.RainLevel <= Epsilon {
		s.RainLevel = 0
	}
	if s.RainLevel == 0 {
		s.Phase = Story{}
		s.DisableSecondaryEffect = true
	}
	return s
}

func (s State) IsDecreasing() bool {
	_, ok := holdStart(s.Phase)
	return ok
}

func (s State) DecreaseStartTime() (float64, bool) {
	return holdStart(s.Phase)
}

func (s State) StoryActive() bool {
	_, ok := s.Phase.(Story)
	return ok
}

// ApplySlider commits a slider value observed at now. It reports false when
// the change is below [Epsilon] and nothing was touched.
func (s *State) ApplySlider(v, now float64) bool {
	if math.IsNaN(v) {
		return false
	}
	v = clamp01(v)
	// Levels too small to move away from zero later snap to it, so story
	// stays reachable.
	if v <= Epsilon {
		v = 0
	}
	delta := v - s.RainLevel
	if math.Abs(delta) <= Epsilon {
		return false
	}

	s.RainLevel = v
	s.Pulse.Trigger(now, math.Min(1, math.Abs(delta)*2))

	if delta < 0 {
		s.Phase = Held{Since: now}
		s.DisableSecondaryEffect = true
	} else {
		s.Phase = Clear{}
		s.SpeedMultiplier = 1 + math.Min(maxSpeedBoost, v*maxSpeedBoost)
		s.DisableSecondaryEffect = v <= lightningLevel
	}

	if v == 0 {
		since, holding := holdStart(s.Phase)
		s.Phase = Story{Holding: holding, HeldSince: since}
		s.DisableSecondaryEffect = true
	}
	return true
}

// ApplyPointer records a pointer sample already translated to renderer space.
// Samples with the button up are dropped unless they release a press.
func (s *State) ApplyPointer(p Pointer) bool {
	if !p.Down && !s.Pointer.Down {
		return false
	}
	s.Pointer = p
	return true
}

func (s *State) ApplyResize(vp Viewport) {
	if vp.Width < 0 {
		vp.Width = 0
	}
	if vp.Height < 0 {
		vp.Height = 0
	}
	if !(vp.PixelRatio > 0) {
		vp.PixelRatio = 1
	}
	s.Viewport = vp
}

// Advance expires the pulse and the decrease hold once their windows have
// elapsed at now.
func (s *State) Advance(now float64, p Params) {
	if s.Pulse.Active {
		if _, running := s.Pulse.Progress(now, p.PulseDuration); !running {
			s.Pulse.Reset()
		}
	}

	switch ph := s.Phase.(type) {
	case Held:
		if holdExpired(ph.Since, now, p.HoldDuration) {
			s.Phase = Clear{}
			s.DisableSecondaryEffect = false
		}
	case Story:
		if ph.Holding && holdExpired(ph.HeldSince, now, p.HoldDuration) {
			s.Phase = Story{}
		}
	}

	if s.SpeedMultiplier < 0 || math.IsNaN(s.SpeedMultiplier) {
		s.SpeedMultiplier = 0
	}
}
