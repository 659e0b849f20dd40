// Package debounce coalesces rapid calls into one delayed call.
package debounce

import (
	"sort"
	"sync"
	"time"
)

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. Hosts with an event loop must run f on
// that loop, the editor is not safe for concurrent use.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Realtime schedules with time.AfterFunc. Callbacks run on their own
// goroutine, so it only suits hosts that serialize access themselves.
type Realtime struct{}

func (Realtime) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer runs its callback once after the last Call's delay. Every Call
// replaces the pending one (last write wins). Its own state is guarded, so
// Call and Cancel may race a Realtime timer, but the callback runs on
// whatever goroutine the Scheduler uses.
type Debouncer struct {
	mu       sync.Mutex
	sched    Scheduler
	callback func()
	timer    Timer
	seq      uint64
	pending  bool
}

func New(sched Scheduler, callback func()) *Debouncer {
	return &Debouncer{sched: sched, callback: callback}
}

func (d *Debouncer) Call(delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.pending = true
	d.timer = d.sched.AfterFunc(delay, func() {
		d.mu.Lock()
		// A stopped timer may still fire if it was already due.
		if !d.pending || d.seq != seq {
			d.mu.Unlock()
			return
		}
		d.pending = false
		d.timer = nil
		d.mu.Unlock()
		d.callback()
	})
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	d.pending = false
}

func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Manual is a deterministic Scheduler: nothing runs until Advance, and due
// callbacks then run on the caller's goroutine in deadline order.
type Manual struct {
	now   time.Duration
	next  uint64
	tasks []*manualTask
}

type manualTask struct {
	at      time.Duration
	id      uint64
	f       func()
	stopped bool
}

func (t *manualTask) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	m.next++
	t := &manualTask{at: m.now + d, id: m.next, f: f}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves the clock forward by d and runs every callback that became
// due, including ones scheduled by callbacks within the window.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		t := m.popDue(target)
		if t == nil {
			break
		}
		m.now = t.at
		t.stopped = true
		t.f()
	}
	m.now = target
}

// Flush runs everything pending regardless of deadline.
func (m *Manual) Flush() {
	for len(m.live()) > 0 {
		last := m.now
		for _, t := range m.live() {
			if t.at > last {
				last = t.at
			}
		}
		m.Advance(last - m.now)
	}
}

// Pending returns the number of scheduled, unstopped callbacks.
func (m *Manual) Pending() int {
	return len(m.live())
}

func (m *Manual) Now() time.Duration {
	return m.now
}

func (m *Manual) live() []*manualTask {
	kept := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.stopped {
			kept = append(kept, t)
		}
	}
	m.tasks = kept
	return kept
}

func (m *Manual) popDue(target time.Duration) *manualTask {
	live := m.live()
	sort.SliceStable(live, func(i, j int) bool {
		if live[i].at != live[j].at {
			return live[i].at < live[j].at
		}
		return live[i].id < live[j].id
	})
	if len(live) == 0 || live[0].at > target {
		return nil
	}
	return live[0]
}
