package render

import "testing"

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(3, 2)
	if c.PixelWidth() != 6 || c.PixelHeight() != 8 {
		t.Fatalf("unexpected pixel size %dx%d", c.PixelWidth(), c.PixelHeight())
	}

	c.Set(0, 0)
	c.Set(5, 7)
	c.Set(5, 7)
	c.Set(-1, 3)
	c.Set(6, 0)

	if c.Count() != 2 {
		t.Errorf("expected 2 pixels, got %d", c.Count())
	}
	if !c.Filled(5, 7) || c.Filled(4, 7) {
		t.Error("Filled disagrees with Set")
	}
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1 in first cell, got %U", c.Grid[0][0])
	}

	c.Unset(5, 7)
	c.Unset(5, 7)
	if c.Filled(5, 7) || c.Grid[1][2] != blank {
		t.Errorf("unset left %U", c.Grid[1][2])
	}

	c.Clear()
	if c.Count() != 0 {
		t.Errorf("expected empty canvas, got %d pixels", c.Count())
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(2, 2)
	want := "⠀⠀\n⠀⠀"
	if got := c.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
