package rain

import (
	"errors"
	"fmt"
)

// Domain errors for controller operations.
var (
	// ErrNoSurface indicates the loop was started without a usable rendering surface.
	ErrNoSurface = errors.New("rain: rendering surface unavailable")

	// ErrInvalidParams indicates a tuning parameter outside its valid range.
	ErrInvalidParams = errors.New("rain: parameter out of valid bounds")

	// ErrRendererPanic indicates the renderer panicked while drawing a frame.
	ErrRendererPanic = errors.New("rain: renderer panicked")
)

// FrameError wraps a renderer failure with frame context.
type FrameError struct {
	Frame   uint64
	Elapsed float64
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d at t=%.3fs: %v", e.Frame, e.Elapsed, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
