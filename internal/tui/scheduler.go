package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/rainfx/internal/rain"
)

type frameMsg struct {
	id rain.FrameID
	at time.Time
}

// frameScheduler turns Schedule calls into tea.Tick commands so frame
// callbacks run on the program's update goroutine, interleaved with input.
// A cancelled tick still arrives but finds nothing to run.
type frameScheduler struct {
	interval time.Duration
	next     rain.FrameID
	pending  map[rain.FrameID]func(time.Time)
	queued   []tea.Cmd
}

func newFrameScheduler(fps int) *frameScheduler {
	if fps <= 0 {
		fps = 30
	}
	return &frameScheduler{
		interval: time.Second / time.Duration(fps),
		pending:  make(map[rain.FrameID]func(time.Time)),
	}
}

func (s *frameScheduler) Schedule(fn func(time.Time)) rain.FrameID {
	s.next++
	id := s.next
	s.pending[id] = fn
	s.queued = append(s.queued, tea.Tick(s.interval, func(t time.Time) tea.Msg {
		return frameMsg{id: id, at: t}
	}))
	return id
}

func (s *frameScheduler) Cancel(id rain.FrameID) {
	delete(s.pending, id)
}

func (s *frameScheduler) deliver(msg frameMsg) bool {
	fn, ok := s.pending[msg.id]
	if !ok {
		return false
	}
	delete(s.pending, msg.id)
	fn(msg.at)
	return true
}

// cmd drains the ticks queued since the last call.
func (s *frameScheduler) cmd() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}
