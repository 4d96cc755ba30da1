// Package export writes rain frames and traces as SVG.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/rainfx/internal/rain"
	"github.com/san-kum/rainfx/internal/render"
)

// CanvasToSVG draws every set braille dot as a circle. scale is the size of
// one sub-pixel in SVG units.
func CanvasToSVG(canvas *render.Canvas, scale float64, fill string) string {
	if canvas == nil || scale <= 0 {
		return ""
	}

	width := float64(canvas.PixelWidth()) * scale
	height := float64(canvas.PixelHeight()) * scale
	dotRadius := scale * 0.4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, width, height, width, height, fill)

	for y := 0; y < canvas.PixelHeight(); y++ {
		for x := 0; x < canvas.PixelWidth(); x++ {
			if !canvas.Filled(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// Series is one line of a trace plot.
type Series struct {
	Name   string
	Stroke string
	Values []float64
}

// TraceToSVG plots the rain amount and the speed multiplier of a trace. The
// speed is scaled into [0,1] by its peak so both share one axis.
func TraceToSVG(frames []rain.RenderParams, width, height int) string {
	amount := make([]float64, len(frames))
	speed := make([]float64, len(frames))
	peak := 0.0
	for i, f := range frames {
		amount[i] = f.RainAmount
		speed[i] = f.SpeedMultiplier
		peak = math.Max(peak, f.SpeedMultiplier)
	}
	if peak > 0 {
		for i := range speed {
			speed[i] /= peak
		}
	}
	return SeriesToSVG([]Series{
		{Name: "rain amount", Stroke: "#5fafff", Values: amount},
		{Name: "speed", Stroke: "#ffd75f", Values: speed},
	}, width, height)
}

// SeriesToSVG draws each series as a path over x = sample index and
// y in [0,1], clamped.
func SeriesToSVG(series []Series, width, height int) string {
	n := 0
	for _, s := range series {
		n = max(n, len(s.Values))
	}
	if n < 2 || width <= 0 || height <= 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for i, s := range series {
		if len(s.Values) < 2 {
			continue
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, s.Stroke)
		for j, v := range s.Values {
			x := float64(j) / float64(n-1) * float64(width)
			y := float64(height) * (1 - math.Min(math.Max(v, 0), 1))
			if j == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
		fmt.Fprintf(&sb, "<text x=\"6\" y=\"%d\" fill=\"%s\" font-size=\"12\">%s</text>\n", 16+14*i, s.Stroke, s.Name)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// Snapshot replays frames through a fresh terminal renderer and returns
// the last canvas.
func Snapshot(frames []rain.RenderParams, fps int) *render.Canvas {
	term := render.NewTerminal(render.ThemeMono, fps)
	for _, f := range frames {
		term.Render(f)
	}
	return term.Canvas()
}
