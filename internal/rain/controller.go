package rain

import (
	"github.com/san-kum/rainfx/internal/clock"
)

// Controller binds a [State] to a clock and translates raw input into state
// changes. Timing decisions are left to [State.Advance] and [Aggregate].
type Controller struct {
	state   State
	clock   clock.Clock
	params  Params
	surface Surface
}

func NewController(clk clock.Clock, p Params) *Controller {
	return &Controller{
		state:  NewState(p.DefaultLevel),
		clock:  clk,
		params: p,
	}
}

func (c *Controller) State() State   { return c.state }
func (c *Controller) Params() Params { return c.params }
func (c *Controller) Now() float64   { return c.clock.Now() }

// AttachSurface sets the surface used to translate pointer coordinates.
func (c *Controller) AttachSurface(s Surface) { c.surface = s }

func (c *Controller) OnSlider(v float64) bool {
	return c.state.ApplySlider(v, c.clock.Now())
}

// OnPointer records a pointer sample given in client coordinates. Y is
// flipped so the renderer sees a bottom-left origin.
func (c *Controller) OnPointer(clientX, clientY float64, down bool) bool {
	b := c.bounds()
	return c.state.ApplyPointer(Pointer{
		X:    clientX - b.Left,
		Y:    b.Height - (clientY - b.Top),
		Down: down,
	})
}

func (c *Controller) OnResize(width, height, pixelRatio float64) {
	c.state.ApplyResize(Viewport{Width: width, Height: height, PixelRatio: pixelRatio})
}

// Frame advances timers to the current time and returns the parameters for
// this frame.
func (c *Controller) Frame() RenderParams {
	now := c.clock.Now()
	c.state.Advance(now, c.params)
	return Aggregate(c.state, now, c.params)
}

func (c *Controller) bounds() Rect {
	if c.surface != nil {
		if b := c.surface.Bounds(); !b.Empty() {
			return b
		}
	}
	return Rect{Width: c.state.Viewport.Width, Height: c.state.Viewport.Height}
}
