package rain

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/rainfx/internal/input"
	"github.com/san-kum/rainfx/internal/logging"
)

// Surface is the area the overlay is drawn on.
type Surface interface {
	Bounds() Rect
}

// EventSource registers input listeners and hands back their detach funcs.
type EventSource interface {
	Listen(kind input.Kind, h input.Handler) func()
}

type Observer interface {
	OnFrame(frame uint64, p RenderParams)
}

type Option func(*Loop)

func WithLogger(log *slog.Logger) Option {
	return func(l *Loop) { l.log = log }
}

func WithObserver(o Observer) Option {
	return func(l *Loop) { l.observers = append(l.observers, o) }
}

// Loop drives the controller once per scheduled frame and owns listener and
// renderer lifetimes.
type Loop struct {
	ctrl      *Controller
	renderer  Renderer
	sched     Scheduler
	events    EventSource
	surface   Surface
	log       *slog.Logger
	observers []Observer

	running    bool
	pending    FrameID
	hasPending bool
	detach     []func()
	frames     uint64
	lastErr    error
}

func NewLoop(ctrl *Controller, r Renderer, sched Scheduler, events EventSource, surface Surface, opts ...Option) *Loop {
	l := &Loop{
		ctrl:     ctrl,
		renderer: r,
		sched:    sched,
		events:   events,
		surface:  surface,
		log:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loop) Running() bool           { return l.running }
func (l *Loop) Frames() uint64          { return l.frames }
func (l *Loop) LastError() error        { return l.lastErr }
func (l *Loop) Listeners() int          { return len(l.detach) }
func (l *Loop) Controller() *Controller { return l.ctrl }

// Start attaches listeners, probes the surface size and schedules the first
// frame. Without a usable surface it logs and leaves the loop disabled.
func (l *Loop) Start() {
	if l.running {
		return
	}
	if l.surface == nil || l.surface.Bounds().Empty() {
		l.log.Warn("overlay disabled", "err", ErrNoSurface)
		return
	}

	l.ctrl.AttachSurface(l.surface)
	if l.events != nil {
		l.listen(input.KindPointerDown, l.onPointer)
		l.listen(input.KindPointerUp, l.onPointer)
		l.listen(input.KindPointerMove, l.onPointer)
		l.listen(input.KindResize, l.onResize)
		l.listen(input.KindSlider, l.onSlider)
	}

	b := l.surface.Bounds()
	l.ctrl.OnResize(b.Width, b.Height, b.PixelRatio)

	l.running = true
	l.schedule()
	l.log.Debug("loop started", "width", b.Width, "height", b.Height, "listeners", len(l.detach))
}

// Stop cancels the pending frame, detaches listeners in reverse order and
// releases the renderer. Calling it again, or before Start, does nothing.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.running = false

	if l.hasPending {
		l.sched.Cancel(l.pending)
		l.hasPending = false
	}
	for i := len(l.detach) - 1; i >= 0; i-- {
		l.detach[i]()
	}
	l.detach = nil

	if rel, ok := l.renderer.(Releaser); ok {
		rel.Release()
	}
	l.log.Debug("loop stopped", "frames", l.frames)
}

func (l *Loop) listen(k input.Kind, h input.Handler) {
	l.detach = append(l.detach, l.events.Listen(k, h))
}

func (l *Loop) onPointer(e input.Event) {
	if pe, ok := e.(input.PointerEvent); ok {
		l.ctrl.OnPointer(pe.X, pe.Y, pe.Down)
	}
}

func (l *Loop) onResize(e input.Event) {
	if re, ok := e.(input.ResizeEvent); ok {
		l.ctrl.OnResize(re.Width, re.Height, re.PixelRatio)
	}
}

func (l *Loop) onSlider(e input.Event) {
	if se, ok := e.(input.SliderChanged); ok {
		if l.ctrl.OnSlider(se.Value) {
			l.log.Debug("slider committed", "level", l.ctrl.State().RainLevel)
		}
	}
}

func (l *Loop) schedule() {
	l.pending = l.sched.Schedule(l.step)
	l.hasPending = true
}

func (l *Loop) step(time.Time) {
	l.hasPending = false
	if !l.running {
		return
	}

	p := l.ctrl.Frame()
	l.frames++
	if err := l.render(p); err != nil {
		l.lastErr = err
		l.log.Warn("frame skipped", "err", err)
	}
	for _, o := range l.observers {
		o.OnFrame(l.frames, p)
	}

	if l.running {
		l.schedule()
	}
}

// render isolates renderer panics; state was already advanced so a failed
// frame only drops the picture.
func (l *Loop) render(p RenderParams) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &FrameError{
				Frame:   l.frames,
				Elapsed: p.ElapsedTime,
				Wrapped: fmt.Errorf("%w: %v", ErrRendererPanic, r),
			}
		}
	}()
	l.renderer.Render(p)
	return nil
}
