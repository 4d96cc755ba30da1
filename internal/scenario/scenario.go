// Package scenario replays scripted input against a controller on a manual
// clock, producing the exact parameter stream a renderer would have seen.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rainfx/internal/clock"
	"github.com/san-kum/rainfx/internal/input"
	"github.com/san-kum/rainfx/internal/logging"
	"github.com/san-kum/rainfx/internal/metrics"
	"github.com/san-kum/rainfx/internal/rain"
	"github.com/san-kum/rainfx/internal/storage"
)

const DefaultFPS = 30

var ErrEmptyStep = errors.New("scenario: step sets no event")

// Scenario defines a scripted input sequence
type Scenario struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	FPS         int      `yaml:"fps"`
	Duration    float64  `yaml:"duration"`
	Level       *float64 `yaml:"level,omitempty"`
	Steps       []Step   `yaml:"steps"`
}

// Step is one timed input. Exactly one of Slider, Pointer or Resize is set.
type Step struct {
	At      float64      `yaml:"at"`
	Slider  *float64     `yaml:"slider,omitempty"`
	Pointer *PointerStep `yaml:"pointer,omitempty"`
	Resize  *ResizeStep  `yaml:"resize,omitempty"`
}

type PointerStep struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Down bool    `yaml:"down"`
	Move bool    `yaml:"move"`
}

type ResizeStep struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	PixelRatio float64 `yaml:"pixel_ratio"`
}

func (s Step) Event() (input.Event, error) {
	set := 0
	var ev input.Event
	if s.Slider != nil {
		set++
		ev = input.SliderChanged{Value: *s.Slider}
	}
	if s.Pointer != nil {
		set++
		ev = input.PointerEvent{X: s.Pointer.X, Y: s.Pointer.Y, Down: s.Pointer.Down, Move: s.Pointer.Move}
	}
	if s.Resize != nil {
		set++
		ev = input.ResizeEvent{Width: s.Resize.Width, Height: s.Resize.Height, PixelRatio: s.Resize.PixelRatio}
	}
	switch set {
	case 0:
		return nil, ErrEmptyStep
	case 1:
		return ev, nil
	default:
		return nil, fmt.Errorf("scenario: step at %.3fs sets %d events, want 1", s.At, set)
	}
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, sc.Validate()
}

func (sc *Scenario) Validate() error {
	if sc.FPS < 0 {
		return fmt.Errorf("scenario %q: negative fps", sc.Name)
	}
	if !(sc.Duration > 0) {
		return fmt.Errorf("scenario %q: duration must be positive", sc.Name)
	}
	for i, st := range sc.Steps {
		if _, err := st.Event(); err != nil {
			return fmt.Errorf("scenario %q step %d: %w", sc.Name, i+1, err)
		}
	}
	return nil
}

func (sc *Scenario) fps() int {
	if sc.FPS > 0 {
		return sc.FPS
	}
	return DefaultFPS
}

// Resolve returns the built-in scenario called name, or loads name as a file.
func Resolve(name string) (*Scenario, error) {
	if sc, ok := Builtin()[name]; ok {
		return sc, nil
	}
	return LoadScenario(name)
}

type fixedSurface rain.Rect

func (s fixedSurface) Bounds() rain.Rect { return rain.Rect(s) }

// Runner replays scenarios frame by frame.
type Runner struct {
	Params    rain.Params
	Surface   rain.Rect
	Log       *slog.Logger
	Renderers []rain.Renderer
}

// Run executes sc and returns every frame rendered, one per 1/fps seconds
// from t=0 to the scenario duration inclusive.
func (r *Runner) Run(ctx context.Context, sc *Scenario) ([]rain.RenderParams, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	log := r.Log
	if log == nil {
		log = logging.Discard()
	}

	params := r.Params
	if sc.Level != nil {
		params.DefaultLevel = *sc.Level
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	steps := make([]Step, len(sc.Steps))
	copy(steps, sc.Steps)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].At < steps[j].At })

	clk := clock.NewManual(0)
	sched := rain.NewManualScheduler()
	bus := input.NewBus()
	rec := &storage.Recorder{}
	renderers := append(rain.Renderers{rec}, r.Renderers...)

	stats := metrics.Standard()

	ctrl := rain.NewController(clk, params)
	loop := rain.NewLoop(ctrl, renderers, sched, bus, fixedSurface(r.Surface),
		rain.WithLogger(log), rain.WithObserver(stats))
	loop.Start()
	if !loop.Running() {
		return nil, rain.ErrNoSurface
	}
	defer loop.Stop()

	fps := sc.fps()
	frames := int(math.Round(sc.Duration * float64(fps)))
	next := 0
	for i := 0; i <= frames; i++ {
		select {
		case <-ctx.Done():
			return rec.Frames(), ctx.Err()
		default:
		}

		t := float64(i) / float64(fps)
		for next < len(steps) && steps[next].At <= t {
			ev, _ := steps[next].Event()
			clk.Set(steps[next].At)
			bus.Emit(ev)
			log.Debug("step", "at", steps[next].At, "event", ev.Kind().String())
			next++
		}
		clk.Set(t)
		sched.Fire(time.Time{})
	}

	v := stats.Values()
	log.Debug("scenario done", "name", sc.Name, "frames", loop.Frames(),
		"mean_rain", v["mean_rain"], "pulses", v["pulses"])
	return rec.Frames(), nil
}
