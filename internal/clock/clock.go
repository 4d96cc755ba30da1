// Package clock supplies elapsed seconds since a controller started.
package clock

import "time"

type Clock interface {
	Now() float64
}

// Monotonic reads the wall clock's monotonic reading relative to its creation.
type Monotonic struct {
	start time.Time
}

func NewMonotonic() *Monotonic {
	return &Monotonic{start: time.Now()}
}

func (c *Monotonic) Now() float64 { return time.Since(c.start).Seconds() }

// Manual only moves when told to. Scenario replays and tests drive it.
type Manual struct {
	t float64
}

func NewManual(t float64) *Manual { return &Manual{t: t} }

func (c *Manual) Now() float64 { return c.t }

// Set moves the clock to t. Earlier values are ignored so time never runs backwards.
func (c *Manual) Set(t float64) {
	if t > c.t {
		c.t = t
	}
}

func (c *Manual) Advance(dt float64) {
	if dt > 0 {
		c.t += dt
	}
}
