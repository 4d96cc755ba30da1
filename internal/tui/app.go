// Package tui hosts the rain overlay in a terminal with bubbletea. The
// program's update goroutine is the single host thread: input, remote events
// and frame callbacks all arrive as messages and run one at a time.
package tui

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/rainfx/internal/clock"
	"github.com/san-kum/rainfx/internal/config"
	"github.com/san-kum/rainfx/internal/input"
	"github.com/san-kum/rainfx/internal/logging"
	"github.com/san-kum/rainfx/internal/rain"
	"github.com/san-kum/rainfx/internal/render"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

const barWidth = 24

// EventMsg injects an input event from outside the program, for example the
// websocket bridge. Send it with tea.Program.Send.
type EventMsg struct {
	Event input.Event
}

type Options struct {
	Config *config.Config
	Clock  clock.Clock
	Log    *slog.Logger
	// Extra renderers receive every frame after the terminal canvas.
	Extra  []rain.Renderer
}

type Model struct {
	cfg     *config.Config
	log     *slog.Logger
	bus     *input.Bus
	sched   *frameScheduler
	surface *termSurface
	term    *render.Terminal
	loop    *rain.Loop
	bar     progress.Model

	width  int
	height int
}

func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.NewMonotonic()
	}
	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}

	term := render.NewTerminal(render.GetTheme(cfg.Theme), cfg.FPS)
	renderers := append(rain.Renderers{term}, opts.Extra...)
	sched := newFrameScheduler(cfg.FPS)
	bus := input.NewBus()
	surface := &termSurface{}
	ctrl := rain.NewController(clk, cfg.Params())

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = barWidth

	return Model{
		cfg:     cfg,
		log:     log,
		bus:     bus,
		sched:   sched,
		surface: surface,
		term:    term,
		loop:    rain.NewLoop(ctrl, renderers, sched, bus, surface, rain.WithLogger(log)),
		bar:     bar,
	}
}

// The loop starts on the first WindowSizeMsg, once the surface has a size.
func (m Model) Init() tea.Cmd { return nil }

// Stop tears the loop down. Safe to call more than once.
func (m Model) Stop() { m.loop.Stop() }

func (m Model) Loop() *rain.Loop { return m.loop }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.surface.resize(msg.Width, msg.Height)
		if m.loop.Running() {
			b := m.surface.Bounds()
			m.bus.Emit(input.ResizeEvent{Width: b.Width, Height: b.Height, PixelRatio: b.PixelRatio})
		} else {
			m.loop.Start()
		}

	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			return m, cmd
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case EventMsg:
		// The terminal owns the surface size; remote clients only drive
		// the slider and the pointer.
		if msg.Event != nil && msg.Event.Kind() != input.KindResize {
			m.bus.Emit(msg.Event)
		}

	case frameMsg:
		m.sched.deliver(msg)
	}
	return m, m.sched.cmd()
}

func (m Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch key := msg.String(); key {
	case "q", "esc", "ctrl+c":
		m.loop.Stop()
		return tea.Quit
	case "left", "h":
		m.slide(-rain.SliderStep)
	case "right", "l":
		m.slide(rain.SliderStep)
	case "down", "j":
		m.slide(-10 * rain.SliderStep)
	case "up", "k":
		m.slide(10 * rain.SliderStep)
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.setLevel(float64(key[0]-'0') / 10)
	case "f":
		m.setLevel(1)
	case "t":
		m.cycleTheme()
	}
	return nil
}

func (m Model) handleMouse(msg tea.MouseMsg) {
	// A release always lands, clamped onto the canvas, so a drag that ends
	// over the status rows still lifts the pointer.
	if msg.Action == tea.MouseActionRelease {
		y := min(msg.Y, m.surface.rows-1)
		m.bus.Emit(input.PointerEvent{X: float64(msg.X), Y: float64(max(y, 0))})
		return
	}
	if msg.Y >= m.surface.rows {
		return
	}
	x, y := float64(msg.X), float64(msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.bus.Emit(input.PointerEvent{X: x, Y: y, Down: true})
		case tea.MouseButtonWheelUp:
			m.slide(rain.SliderStep)
		case tea.MouseButtonWheelDown:
			m.slide(-rain.SliderStep)
		}
	case tea.MouseActionMotion:
		m.bus.Emit(input.PointerEvent{X: x, Y: y, Down: msg.Button == tea.MouseButtonLeft, Move: true})
	}
}

func (m Model) level() float64 {
	return m.loop.Controller().State().RainLevel
}

func (m Model) slide(delta float64) {
	m.setLevel(m.level() + delta)
}

// setLevel snaps to the slider grid before emitting, like a range input.
func (m Model) setLevel(v float64) {
	v = math.Round(v/rain.SliderStep) * rain.SliderStep
	v = math.Min(math.Max(v, 0), 1)
	m.bus.Emit(input.SliderChanged{Value: v})
}

func (m Model) cycleTheme() {
	names := render.ThemeNames()
	cur := m.term.Theme().Name
	for i, n := range names {
		if n == cur {
			m.term.SetTheme(render.GetTheme(names[(i+1)%len(names)]))
			return
		}
	}
	m.term.SetTheme(render.GetTheme(names[0]))
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	var b strings.Builder
	canvas := m.term.View()
	if !m.loop.Running() {
		canvas = dim.Render("terminal too small")
	}
	b.WriteString(canvas)
	if lines := strings.Count(canvas, "\n") + 1; lines < m.surface.rows {
		b.WriteString(strings.Repeat("\n", m.surface.rows-lines))
	}
	b.WriteString("\n")
	b.WriteString(m.status())
	b.WriteString("\n")
	b.WriteString(dim.Render("←/→ ±0.01  ↑/↓ ±0.1  0-9 level  f full  drag wipe  t theme  q quit"))
	return b.String()
}

func (m Model) status() string {
	p := m.term.Last()
	level := m.level()

	var flags []string
	if p.StoryActive {
		flags = append(flags, magenta.Render("story"))
	}
	if p.IsDecreasing {
		flags = append(flags, yellow.Render("easing"))
	}
	if m.term.Flash() {
		flags = append(flags, yellow.Render("⚡"))
	}
	if p.PulseProgress > 0 {
		flags = append(flags, cyan.Render("pulse"))
	}

	line := fmt.Sprintf("%s %s %s  %s %s  %s %s  %s",
		dim.Render("rain"), m.bar.ViewAs(level), white.Render(fmt.Sprintf("%.2f", level)),
		dim.Render("amount"), white.Render(fmt.Sprintf("%.2f", p.RainAmount)),
		dim.Render("speed"), white.Render(fmt.Sprintf("%.2fx", p.SpeedMultiplier)),
		dim.Render(m.term.Theme().Name),
	)
	if len(flags) > 0 {
		line += "  " + strings.Join(flags, " ")
	}
	return line + "\n"
}

// Run drives the overlay until the user quits. bind, when non-nil, receives
// the program before it starts so other goroutines can Send EventMsg values.
func Run(opts Options, bind func(*tea.Program)) error {
	m := New(opts)
	defer m.Stop()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if bind != nil {
		bind(p)
	}
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal: %w", err)
	}
	return nil
}
