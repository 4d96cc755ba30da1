// Package render draws rain frames into a braille terminal canvas.
package render

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/rainfx/internal/rain"
)

const (
	maxCells      = 400
	maxFrameDt    = 0.25
	dropDensity   = 0.55
	beadDensity   = 0.012
	wipeRadius    = 6
	lightningGate = 0.3
	heartScale    = 0.38
)

// Terminal is a software renderer producing one styled string per frame.
// Simulated time is integrated from frame deltas scaled by the speed
// multiplier, so speed changes never make the drops jump.
type Terminal struct {
	theme  Theme
	canvas *Canvas

	spring   harmonica.Spring
	story    float64
	storyVel float64

	simTime     float64
	lastElapsed float64
	started     bool

	flash  bool
	last   rain.RenderParams
	view   string
	frames int
}

func NewTerminal(theme Theme, fps int) *Terminal {
	if fps <= 0 {
		fps = 30
	}
	return &Terminal{
		theme:  theme,
		spring: harmonica.NewSpring(harmonica.FPS(fps), 2.0, 1.0),
	}
}

func (t *Terminal) SetTheme(theme Theme)    { t.theme = theme }
func (t *Terminal) Theme() Theme            { return t.theme }
func (t *Terminal) View() string            { return t.view }
func (t *Terminal) Flash() bool             { return t.flash }
func (t *Terminal) StoryRamp() float64      { return t.story }
func (t *Terminal) Last() rain.RenderParams { return t.last }

// Canvas is the most recent frame's dots, nil before the first frame.
func (t *Terminal) Canvas() *Canvas { return t.canvas }

func (t *Terminal) Render(p rain.RenderParams) {
	t.last = p
	t.frames++

	cols := clampInt(int(p.Viewport.Width), 0, maxCells)
	rows := clampInt(int(p.Viewport.Height), 0, maxCells)
	if cols == 0 || rows == 0 {
		t.view = ""
		return
	}
	if t.canvas == nil || t.canvas.Width != cols || t.canvas.Height != rows {
		t.canvas = NewCanvas(cols, rows)
	}

	dt := 0.0
	if t.started {
		dt = math.Min(math.Max(p.ElapsedTime-t.lastElapsed, 0), maxFrameDt)
	}
	t.started = true
	t.lastElapsed = p.ElapsedTime
	t.simTime += dt * p.SpeedMultiplier

	target := 0.0
	if p.StoryActive {
		target = 1
	}
	t.story, t.storyVel = t.spring.Update(t.story, t.storyVel, target)
	t.story = math.Max(0, t.story)

	t.canvas.Clear()
	t.drawDrops(p.RainAmount)
	t.drawBeads(p.RainAmount)
	if p.Pointer.Down {
		t.wipe(p.Pointer)
	}
	if t.story > 0.01 {
		t.drawHeart()
	}

	t.flash = !p.DisableSecondaryEffect && p.RainAmount > 0.5 && lightning(t.simTime*0.2) > lightningGate
	t.view = lipgloss.NewStyle().Foreground(t.color(p)).Render(t.canvas.String())
}

// Release drops the canvas and restarts simulated time on the next frame.
func (t *Terminal) Release() {
	t.canvas = nil
	t.view = ""
	t.started = false
	t.story, t.storyVel = 0, 0
}

func (t *Terminal) color(p rain.RenderParams) lipgloss.Color {
	switch {
	case t.flash:
		return t.theme.Flash
	case p.StoryActive:
		return t.theme.Heart
	case p.IsDecreasing:
		return t.theme.Muted
	case rain.PulseGain(p.PulseProgress, p.PulseAmplitude) > 0.25:
		return t.theme.Pulse
	default:
		return t.theme.Drop
	}
}

func (t *Terminal) drawDrops(amount float64) {
	if amount <= 0 {
		return
	}
	w, h := t.canvas.PixelWidth(), t.canvas.PixelHeight()
	density := dropDensity * amount
	for x := 0; x < w; x++ {
		n := noise(float64(x) * 1.37)
		if noise(float64(x)*7.91+3.1) >= density {
			continue
		}
		trail := 2 + int(n*6*(0.5+amount))
		period := float64(h + trail)
		speed := (0.6 + n) * float64(h) * 0.5
		head := int(math.Mod(n*period*7+t.simTime*speed, period))
		for y := head - trail; y <= head; y++ {
			t.canvas.Set(x, y)
		}
	}
}

func (t *Terminal) drawBeads(amount float64) {
	if amount <= 0 {
		return
	}
	w, h := t.canvas.PixelWidth(), t.canvas.PixelHeight()
	limit := beadDensity * amount
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := noise(float64(x)*107.45 + float64(y)*3543.654)
			if n >= limit {
				continue
			}
			if fract(n*1e3+t.simTime*0.2) < 0.7 {
				t.canvas.Set(x, y)
			}
		}
	}
}

// wipe clears a disc under a held pointer. Pointer Y has a bottom-left origin.
func (t *Terminal) wipe(ptr rain.Pointer) {
	cx := int(ptr.X * 2)
	cy := int((float64(t.canvas.Height) - ptr.Y) * 4)
	for dy := -wipeRadius; dy <= wipeRadius; dy++ {
		for dx := -wipeRadius; dx <= wipeRadius; dx++ {
			if dx*dx+dy*dy <= wipeRadius*wipeRadius {
				t.canvas.Unset(cx+dx, cy+dy)
			}
		}
	}
}

func (t *Terminal) drawHeart() {
	w, h := t.canvas.PixelWidth(), t.canvas.PixelHeight()
	s := t.story * heartScale * float64(min(w, h))
	if s < 1 {
		return
	}
	cx, cy := float64(w)/2, float64(h)/2
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			x := (float64(px) - cx) / s
			y := (cy - float64(py)) / s
			f := heart(x, y)
			switch {
			case f <= 0 && f > -0.08:
				t.canvas.Set(px, py)
			case f <= 0:
				t.canvas.Unset(px, py)
			}
		}
	}
}

// heart is negative inside the classic implicit heart curve.
func heart(x, y float64) float64 {
	a := x*x + y*y - 1
	return a*a*a - x*x*y*y*y
}

func lightning(t float64) float64 {
	l := math.Sin(t * math.Sin(t*10))
	return l * math.Pow(math.Max(0, math.Sin(t+math.Sin(t))), 10)
}

func noise(t float64) float64 {
	return fract(math.Sin(t*12345.564) * 7658.76)
}

func fract(v float64) float64 { return v - math.Floor(v) }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
