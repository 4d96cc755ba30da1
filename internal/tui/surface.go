package tui

import "github.com/san-kum/rainfx/internal/rain"

const statusLines = 3

// termSurface is the terminal area left for the canvas, in cells.
type termSurface struct {
	cols, rows int
}

func (s *termSurface) resize(width, height int) {
	s.cols = max(width, 0)
	s.rows = max(height-statusLines, 0)
}

func (s *termSurface) Bounds() rain.Rect {
	return rain.Rect{Width: float64(s.cols), Height: float64(s.rows), PixelRatio: 1}
}
