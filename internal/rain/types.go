package rain

import (
	"fmt"
	"math"
)

const (
	// Epsilon is the smallest slider movement treated as a change.
	Epsilon = 1e-4
	// MinSpeed is the floor applied to the speed multiplier handed to renderers.
	MinSpeed = 1e-4

	DefaultLevel         = 0.7
	DefaultPulseDuration = 0.9
	DefaultHoldDuration  = 3.0
	DefaultDecreaseBias  = 0.5
	SliderStep           = 0.01

	maxSpeedBoost = 3.0
	// lightningLevel is the intensity at or below which an increase keeps lightning off.
	lightningLevel = 0.5
)

type Pointer struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Down bool    `json:"down"`
}

type Viewport struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	PixelRatio float64 `json:"pixelRatio"`
}

// Rect is a surface's placement in client coordinates.
type Rect struct {
	Left, Top     float64
	Width, Height float64
	PixelRatio    float64
}

func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// RenderParams is everything a renderer receives for one frame.
type RenderParams struct {
	RainAmount             float64  `json:"rainAmount"`
	PulseProgress          float64  `json:"pulseProgress"`
	PulseAmplitude         float64  `json:"pulseAmplitude"`
	IsDecreasing           bool     `json:"isDecreasing"`
	DisableSecondaryEffect bool     `json:"disableSecondaryEffect"`
	SpeedMultiplier        float64  `json:"speedMultiplier"`
	StoryActive            bool     `json:"storyActive"`
	Pointer                Pointer  `json:"pointer"`
	Viewport               Viewport `json:"viewport"`
	ElapsedTime            float64  `json:"elapsedTime"`
}

// Params are the controller's tunables.
type Params struct {
	DefaultLevel  float64
	PulseDuration float64
	HoldDuration  float64
	// DecreaseBias is the fraction of intensity removed at the start of a hold.
	DecreaseBias float64
}

func DefaultParams() Params {
	return Params{
		DefaultLevel:  DefaultLevel,
		PulseDuration: DefaultPulseDuration,
		HoldDuration:  DefaultHoldDuration,
		DecreaseBias:  DefaultDecreaseBias,
	}
}

func (p Params) Validate() error {
	if p.DefaultLevel < 0 || p.DefaultLevel > 1 || math.IsNaN(p.DefaultLevel) {
		return fmt.Errorf("%w: default level %f not in [0,1]", ErrInvalidParams, p.DefaultLevel)
	}
	if !(p.PulseDuration > 0) {
		return fmt.Errorf("%w: pulse duration must be positive, got %f", ErrInvalidParams, p.PulseDuration)
	}
	if !(p.HoldDuration > 0) {
		return fmt.Errorf("%w: hold duration must be positive, got %f", ErrInvalidParams, p.HoldDuration)
	}
	if p.DecreaseBias < 0 || p.DecreaseBias > 1 || math.IsNaN(p.DecreaseBias) {
		return fmt.Errorf("%w: decrease bias %f not in [0,1]", ErrInvalidParams, p.DecreaseBias)
	}
	return nil
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
