package export

import (
	"strings"
	"testing"

	"github.com/san-kum/rainfx/internal/rain"
	"github.com/san-kum/rainfx/internal/render"
)

func TestCanvasToSVG(t *testing.T) {
	c := render.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)

	svg := CanvasToSVG(c, 2, "#fff")
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected 2 dots, got %d", got)
	}
	if !strings.Contains(svg, `width="8" height="8"`) {
		t.Errorf("unexpected size in %q", svg[:120])
	}
	if CanvasToSVG(nil, 2, "#fff") != "" {
		t.Error("expected empty output for nil canvas")
	}
}

func TestTraceToSVG(t *testing.T) {
	frames := []rain.RenderParams{
		{RainAmount: 0.7, SpeedMultiplier: 2},
		{RainAmount: 0.3, SpeedMultiplier: 1},
		{RainAmount: 0, SpeedMultiplier: 4},
	}
	svg := TraceToSVG(frames, 300, 100)
	if got := strings.Count(svg, "<path"); got != 2 {
		t.Fatalf("expected 2 paths, got %d", got)
	}
	if !strings.Contains(svg, "M0.0,30.0 L150.0,70.0 L300.0,100.0") {
		t.Errorf("rain path not found in %s", svg)
	}
	if !strings.Contains(svg, "M0.0,50.0 L150.0,75.0 L300.0,0.0") {
		t.Errorf("speed path not normalized in %s", svg)
	}
}

func TestSeriesTooShort(t *testing.T) {
	if SeriesToSVG([]Series{{Values: []float64{1}}}, 10, 10) != "" {
		t.Error("expected empty output for a single sample")
	}
}

func TestSnapshot(t *testing.T) {
	vp := rain.Viewport{Width: 20, Height: 10, PixelRatio: 1}
	frames := []rain.RenderParams{
		{RainAmount: 0.9, SpeedMultiplier: 3, Viewport: vp, ElapsedTime: 0},
		{RainAmount: 0.9, SpeedMultiplier: 3, Viewport: vp, ElapsedTime: 0.1},
	}
	c := Snapshot(frames, 10)
	if c == nil || c.Width != 20 || c.Height != 10 {
		t.Fatalf("unexpected canvas %+v", c)
	}
	if c.Count() == 0 {
		t.Error("expected drops on a heavy rain frame")
	}
	if Snapshot(nil, 10) != nil {
		t.Error("expected nil canvas without frames")
	}
}
