// Package clock provides the schedulers used for the status banner auto-hide.
package clock

import (
	"sort"
	"sync"
	"time"
)

// System schedules on the runtime timer.
type System struct{}

func (System) AfterFunc(d time.Duration, f func()) func() {
	t := time.AfterFunc(d, f)
	return func() { t.Stop() }
}

// Manual is a scheduler driven by Advance. Pending callbacks run on the
// goroutine calling Advance, in due order.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*manualTask
}

type manualTask struct {
	id  int
	due time.Duration
	f   func()
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) AfterFunc(d time.Duration, f func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	task := &manualTask{id: m.seq, due: m.now + d, f: f}
	m.pending = append(m.pending, task)
	return func() { m.remove(task.id) }
}

// Advance moves the clock forward and runs every callback that became due.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	var due []*manualTask
	keep := m.pending[:0]
	for _, task := range m.pending {
		if task.due <= m.now {
			due = append(due, task)
			continue
		}
		keep = append(keep, task)
	}
	m.pending = keep
	m.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].due < due[j].due })
	for _, task := range due {
		task.f()
	}
}

// Pending returns the delays, relative to now, of callbacks not yet run.
func (m *Manual) Pending() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Duration, 0, len(m.pending))
	for _, task := range m.pending {
		out = append(out, task.due-m.now)
	}
	return out
}

func (m *Manual) remove(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, task := range m.pending {
		if task.id == id {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}
