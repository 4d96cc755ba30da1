// Package input normalizes host events into a single synchronous stream.
//
// Three event families exist:
//
//   - [SliderChanged]: the intensity control moved
//   - [PointerEvent]: press, release or drag on the overlay surface
//   - [ResizeEvent]: the viewport changed size
//
// A [Bus] dispatches them to listeners on the caller's goroutine. It is
// meant to be owned by a single host event loop and is not safe for
// concurrent use.
package input

import "fmt"

type Kind uint8

const (
	KindSlider Kind = iota
	KindPointerDown
	KindPointerUp
	KindPointerMove
	KindResize
)

func (k Kind) String() string {
	switch k {
	case KindSlider:
		return "slider"
	case KindPointerDown:
		return "pointerdown"
	case KindPointerUp:
		return "pointerup"
	case KindPointerMove:
		return "pointermove"
	case KindResize:
		return "resize"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

type Event interface {
	Kind() Kind
}

type SliderChanged struct {
	Value float64
}

func (SliderChanged) Kind() Kind { return KindSlider }

// PointerEvent carries client coordinates, screen origin top-left.
type PointerEvent struct {
	X, Y float64
	Down bool
	Move bool
}

func (e PointerEvent) Kind() Kind {
	switch {
	case e.Move:
		return KindPointerMove
	case e.Down:
		return KindPointerDown
	default:
		return KindPointerUp
	}
}

type ResizeEvent struct {
	Width, Height float64
	PixelRatio    float64
}

func (ResizeEvent) Kind() Kind { return KindResize }
