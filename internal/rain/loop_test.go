package rain_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rainfx/internal/clock"
	"github.com/san-kum/rainfx/internal/input"
	"github.com/san-kum/rainfx/internal/rain"
)

type surface struct{ rect rain.Rect }

func (s *surface) Bounds() rain.Rect { return s.rect }

type recorder struct {
	frames   []rain.RenderParams
	released int
	panicOn  int
}

func (r *recorder) Render(p rain.RenderParams) {
	r.frames = append(r.frames, p)
	if r.panicOn > 0 && len(r.frames) == r.panicOn {
		panic("lost context")
	}
}

func (r *recorder) Release() { r.released++ }

// orderedSource records detach calls so teardown order can be checked.
type orderedSource struct {
	bus      *input.Bus
	detached []input.Kind
}

func (o *orderedSource) Listen(k input.Kind, h input.Handler) func() {
	detach := o.bus.Listen(k, h)
	return func() {
		o.detached = append(o.detached, k)
		detach()
	}
}

type frameCounter struct{ last uint64 }

func (f *frameCounter) OnFrame(frame uint64, _ rain.RenderParams) { f.last = frame }

var _ = Describe("Loop", func() {
	var (
		clk   *clock.Manual
		sched *rain.ManualScheduler
		src   *orderedSource
		rec   *recorder
		surf  *surface
		ctrl  *rain.Controller
		loop  *rain.Loop
		obs   *frameCounter
	)

	fire := func() int { return sched.Fire(time.Time{}) }

	BeforeEach(func() {
		clk = clock.NewManual(0)
		sched = rain.NewManualScheduler()
		src = &orderedSource{bus: input.NewBus()}
		rec = &recorder{}
		surf = &surface{rect: rain.Rect{Width: 320, Height: 200, PixelRatio: 2}}
		ctrl = rain.NewController(clk, rain.DefaultParams())
		obs = &frameCounter{}
		loop = rain.NewLoop(ctrl, rec, sched, src, surf, rain.WithObserver(obs))
	})

	Context("without a usable surface", func() {
		It("stays disabled when the surface is missing", func() {
			loop = rain.NewLoop(ctrl, rec, sched, src, nil)
			loop.Start()

			Expect(loop.Running()).To(BeFalse())
			Expect(sched.Pending()).To(Equal(0))
			Expect(src.bus.Len()).To(Equal(0))
			Expect(loop.Stop).NotTo(Panic())
			Expect(rec.released).To(Equal(0))
		})

		It("stays disabled when the surface has no area", func() {
			surf.rect = rain.Rect{}
			loop.Start()

			Expect(loop.Running()).To(BeFalse())
			Expect(sched.Pending()).To(Equal(0))
		})
	})

	Context("when started", func() {
		BeforeEach(func() {
			loop.Start()
		})

		AfterEach(func() {
			loop.Stop()
		})

		It("attaches listeners and probes the viewport", func() {
			Expect(loop.Running()).To(BeTrue())
			Expect(loop.Listeners()).To(Equal(5))
			Expect(src.bus.Len()).To(Equal(5))
			Expect(sched.Pending()).To(Equal(1))
			Expect(ctrl.State().Viewport).To(Equal(rain.Viewport{Width: 320, Height: 200, PixelRatio: 2}))
		})

		It("renders once per fired frame and reschedules", func() {
			Expect(fire()).To(Equal(1))
			Expect(fire()).To(Equal(1))

			Expect(rec.frames).To(HaveLen(2))
			Expect(loop.Frames()).To(Equal(uint64(2)))
			Expect(obs.last).To(Equal(uint64(2)))
			Expect(sched.Pending()).To(Equal(1))
		})

		It("ignores a second Start", func() {
			loop.Start()
			Expect(src.bus.Len()).To(Equal(5))
			Expect(sched.Pending()).To(Equal(1))
		})

		It("routes bus events into the controller", func() {
			clk.Set(10)
			src.bus.Emit(input.SliderChanged{Value: 0.3})
			src.bus.Emit(input.PointerEvent{X: 40, Y: 50, Down: true})
			src.bus.Emit(input.ResizeEvent{Width: 640, Height: 400, PixelRatio: 1})
			fire()

			last := rec.frames[len(rec.frames)-1]
			Expect(last.IsDecreasing).To(BeTrue())
			Expect(last.DisableSecondaryEffect).To(BeTrue())
			Expect(last.Pointer).To(Equal(rain.Pointer{X: 40, Y: 150, Down: true}))
			Expect(last.Viewport.Width).To(Equal(640.0))
			Expect(last.ElapsedTime).To(Equal(10.0))
		})

		It("ignores hover moves but records drags and releases", func() {
			src.bus.Emit(input.PointerEvent{X: 1, Y: 1, Move: true})
			Expect(ctrl.State().Pointer).To(Equal(rain.Pointer{}))

			src.bus.Emit(input.PointerEvent{X: 10, Y: 10, Down: true})
			src.bus.Emit(input.PointerEvent{X: 20, Y: 10, Down: true, Move: true})
			Expect(ctrl.State().Pointer.X).To(Equal(20.0))

			src.bus.Emit(input.PointerEvent{X: 30, Y: 10})
			Expect(ctrl.State().Pointer).To(Equal(rain.Pointer{X: 30, Y: 190}))
		})

		It("keeps running and keeps state when the renderer panics", func() {
			rec.panicOn = 1
			clk.Set(5)
			src.bus.Emit(input.SliderChanged{Value: 0.2})
			fire()

			var frameErr *rain.FrameError
			Expect(errors.As(loop.LastError(), &frameErr)).To(BeTrue())
			Expect(errors.Is(loop.LastError(), rain.ErrRendererPanic)).To(BeTrue())
			Expect(frameErr.Elapsed).To(Equal(5.0))

			Expect(sched.Pending()).To(Equal(1))
			Expect(ctrl.State().IsDecreasing()).To(BeTrue())

			clk.Set(6)
			fire()
			Expect(rec.frames).To(HaveLen(2))
			Expect(rec.frames[1].IsDecreasing).To(BeTrue())
		})
	})

	Context("when stopped", func() {
		BeforeEach(func() {
			loop.Start()
			fire()
			loop.Stop()
		})

		It("cancels the frame, detaches in reverse order and releases once", func() {
			Expect(loop.Running()).To(BeFalse())
			Expect(sched.Pending()).To(Equal(0))
			Expect(src.bus.Len()).To(Equal(0))
			Expect(rec.released).To(Equal(1))
			Expect(src.detached).To(Equal([]input.Kind{
				input.KindSlider,
				input.KindResize,
				input.KindPointerMove,
				input.KindPointerUp,
				input.KindPointerDown,
			}))
		})

		It("tolerates repeated Stop calls", func() {
			loop.Stop()
			loop.Stop()

			Expect(rec.released).To(Equal(1))
			Expect(src.detached).To(HaveLen(5))
		})

		It("no longer reacts to input", func() {
			src.bus.Emit(input.SliderChanged{Value: 0.1})
			Expect(ctrl.State().RainLevel).To(Equal(rain.DefaultLevel))
			Expect(fire()).To(Equal(0))
			Expect(rec.frames).To(HaveLen(1))
		})

		It("can be started again", func() {
			loop.Start()
			Expect(loop.Running()).To(BeTrue())
			Expect(sched.Pending()).To(Equal(1))
			Expect(src.bus.Len()).To(Equal(5))
			loop.Stop()
			Expect(rec.released).To(Equal(2))
		})
	})

	It("treats Stop before Start as a no-op", func() {
		Expect(loop.Stop).NotTo(Panic())
		Expect(rec.released).To(Equal(0))
	})
})
