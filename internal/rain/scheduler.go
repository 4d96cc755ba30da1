package rain

import (
	"sort"
	"time"
)

type FrameID uint64

// Scheduler is the host's schedule/cancel pair for frame callbacks. Callbacks
// must run on the same goroutine that delivers input events.
type Scheduler interface {
	Schedule(fn func(time.Time)) FrameID
	Cancel(id FrameID)
}

// ManualScheduler holds callbacks until Fire is called.
type ManualScheduler struct {
	next    FrameID
	pending map[FrameID]func(time.Time)
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[FrameID]func(time.Time))}
}

func (m *ManualScheduler) Schedule(fn func(time.Time)) FrameID {
	m.next++
	m.pending[m.next] = fn
	return m.next
}

func (m *ManualScheduler) Cancel(id FrameID) {
	delete(m.pending, id)
}

func (m *ManualScheduler) Pending() int { return len(m.pending) }

// Fire runs the callbacks pending at call time in scheduling order. Callbacks
// scheduled while firing wait for the next call.
func (m *ManualScheduler) Fire(t time.Time) int {
	ids := make([]FrameID, 0, len(m.pending))
	for id := range m.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	fired := 0
	for _, id := range ids {
		fn, ok := m.pending[id]
		if !ok {
			continue
		}
		delete(m.pending, id)
		fn(t)
		fired++
	}
	return fired
}
