package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rainfx/internal/clock"
	"github.com/san-kum/rainfx/internal/config"
	"github.com/san-kum/rainfx/internal/input"
	"github.com/san-kum/rainfx/internal/rain"
)

func newTestModel(t *testing.T) (Model, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(0)
	m := New(Options{Config: config.DefaultConfig(), Clock: clk})
	return m, clk
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

// tick fires the single pending frame.
func tick(t *testing.T, m Model) Model {
	t.Helper()
	if len(m.sched.pending) != 1 {
		t.Fatalf("pending frames = %d, want 1", len(m.sched.pending))
	}
	for id := range m.sched.pending {
		return update(m, frameMsg{id: id, at: time.Now()})
	}
	return m
}

func TestModelStartsOnFirstResize(t *testing.T) {
	g := NewWithT(t)
	m, _ := newTestModel(t)
	g.Expect(m.Loop().Running()).To(BeFalse())
	g.Expect(m.View()).To(BeEmpty())

	m = update(m, tea.WindowSizeMsg{Width: 40, Height: 20})
	g.Expect(m.Loop().Running()).To(BeTrue())
	g.Expect(m.Loop().Listeners()).To(Equal(5))

	vp := m.Loop().Controller().State().Viewport
	g.Expect(vp.Width).To(Equal(40.0))
	g.Expect(vp.Height).To(Equal(float64(20 - statusLines)))
}

func TestModelTinyTerminalStaysDisabled(t *testing.T) {
	g := NewWithT(t)
	m, _ := newTestModel(t)
	m = update(m, tea.WindowSizeMsg{Width: 40, Height: statusLines})
	g.Expect(m.Loop().Running()).To(BeFalse())
	g.Expect(m.View()).To(ContainSubstring("too small"))
}

func TestModelRendersFrames(t *testing.T) {
	g := NewWithT(t)
	m, clk := newTestModel(t)
	m = update(m, tea.WindowSizeMsg{Width: 40, Height: 20})

	clk.Set(0.1)
	m = tick(t, m)
	g.Expect(m.Loop().Frames()).To(Equal(uint64(1)))
	g.Expect(m.term.Last().RainAmount).To(BeNumerically("~", config.DefaultConfig().Level, 1e-9))
	g.Expect(m.View()).To(ContainSubstring("amount"))
	g.Expect(len(m.sched.pending)).To(Equal(1), "next frame is scheduled")
}

func TestModelKeysMoveSlider(t *testing.T) {
	g := NewWithT(t)
	m, clk := newTestModel(t)
	m = update(m, tea.WindowSizeMsg{Width: 40, Height: 20})
	start := m.level()

	clk.Set(1)
	m = update(m, tea.KeyMsg{Type: tea.KeyRight})
	g.Expect(m.level()).To(BeNumerically("~", start+rain.SliderStep, 1e-9))

	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	g.Expect(m.level()).To(BeNumerically("~", 0.3, 1e-9))
	g.Expect(m.Loop().Controller().State().IsDecreasing()).To(BeTrue())

	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("0")})
	st := m.Loop().Controller().State()
	g.Expect(st.StoryActive()).To(BeTrue())
	g.Expect(st.RainLevel).To(Equal(0.0))
}

func TestModelMouseDrag(t *testing.T) {
	g := NewWithT(t)
	m, _ := newTestModel(t)
	m = update(m, tea.WindowSizeMsg{Width: 40, Height: 20})

	m = update(m, tea.MouseMsg{X: 5, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	ptr := m.Loop().Controller().State().Pointer
	g.Expect(ptr.Down).To(BeTrue())
	g.Expect(ptr.X).To(Equal(5.0))
	g.Expect(ptr.Y).To(Equal(float64(20-statusLines) - 2))

	m = update(m, tea.MouseMsg{X: 7, Y: 3, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	g.Expect(m.Loop().Controller().State().Pointer.X).To(Equal(7.0))

	m = update(m, tea.MouseMsg{X: 7, Y: 3, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	g.Expect(m.Loop().Controller().State().Pointer.Down).To(BeFalse())
}

func TestModelReleaseBelowCanvas(t *testing.T) {
	g := NewWithT(t)
	m, _ := newTestModel(t)
	m = update(m, tea.WindowSizeMsg{Width: 40, Height: 20})
	rows := 20 - statusLines

	m = update(m, tea.MouseMsg{X: 5, Y: rows - 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	g.Expect(m.Loop().Controller().State().Pointer.Down).To(BeTrue())

	m = update(m, tea.MouseMsg{X: 6, Y: rows + 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	g.Expect(m.Loop().Controller().State().Pointer.X).To(Equal(5.0), "motion over the status rows is ignored")

	m = update(m, tea.MouseMsg{X: 6, Y: rows + 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	ptr := m.Loop().Controller().State().Pointer
	g.Expect(ptr.Down).To(BeFalse())
	g.Expect(ptr.X).To(Equal(6.0))
	g.Expect(ptr.Y).To(Equal(1.0), "release is clamped to the bottom canvas row")
}

func TestModelRemoteEvents(t *testing.T) {
	g := NewWithT(t)
	m, clk := newTestModel(t)
	m = update(m, tea.WindowSizeMsg{Width: 40, Height: 20})

	clk.Set(2)
	m = update(m, EventMsg{Event: input.SliderChanged{Value: 0.9}})
	g.Expect(m.level()).To(Equal(0.9))

	m = update(m, EventMsg{Event: input.ResizeEvent{Width: 1920, Height: 1080, PixelRatio: 2}})
	g.Expect(m.Loop().Controller().State().Viewport.Width).To(Equal(40.0), "terminal keeps the surface")
}

func TestModelThemeCycle(t *testing.T) {
	g := NewWithT(t)
	m, _ := newTestModel(t)
	first := m.term.Theme().Name
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	g.Expect(m.term.Theme().Name).NotTo(Equal(first))
}

func TestModelQuitStopsLoop(t *testing.T) {
	g := NewWithT(t)
	m, _ := newTestModel(t)
	m = update(m, tea.WindowSizeMsg{Width: 40, Height: 20})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	g.Expect(cmd).NotTo(BeNil())
	g.Expect(cmd()).To(Equal(tea.Quit()))
	m = next.(Model)
	g.Expect(m.Loop().Running()).To(BeFalse())
	g.Expect(m.Loop().Listeners()).To(Equal(0))
	g.Expect(m.sched.pending).To(BeEmpty())
	g.Expect(strings.TrimSpace(m.term.View())).To(BeEmpty())
}
