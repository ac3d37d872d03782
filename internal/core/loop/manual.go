package loop

import (
	"sync"
	"time"
)

// Manual is a Scheduler driven by explicit Advance calls. Callbacks run on the
// goroutine calling Advance, in deadline order (ties in scheduling order).
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*manualTimer
}

// NewManual returns a manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

type manualTimer struct {
	owner   *Manual
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

// AfterFunc schedules f to run once the clock passes now+d.
func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	timer := &manualTimer{owner: m, at: m.now + d, seq: m.seq, fn: f}
	m.pending = append(m.pending, timer)
	return timer
}

// Advance moves the clock forward by d, running every callback that falls due.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDueLocked(target)
		if next == nil {
			m.now = target
			m.compactLocked()
			m.mu.Unlock()
			return
		}
		m.now = next.at
		next.fired = true
		m.mu.Unlock()

		next.fn()
	}
}

// Elapsed returns the total time advanced so far.
func (m *Manual) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of callbacks still scheduled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, timer := range m.pending {
		if !timer.stopped && !timer.fired {
			count++
		}
	}
	return count
}

func (m *Manual) nextDueLocked(target time.Duration) *manualTimer {
	var next *manualTimer
	for _, timer := range m.pending {
		if timer.stopped || timer.fired || timer.at > target {
			continue
		}
		if next == nil || timer.at < next.at || (timer.at == next.at && timer.seq < next.seq) {
			next = timer
		}
	}
	return next
}

func (m *Manual) compactLocked() {
	live := m.pending[:0]
	for _, timer := range m.pending {
		if !timer.stopped && !timer.fired {
			live = append(live, timer)
		}
	}
	m.pending = live
}

func (timer *manualTimer) Stop() bool {
	timer.owner.mu.Lock()
	defer timer.owner.mu.Unlock()
	if timer.stopped || timer.fired {
		return false
	}
	timer.stopped = true
	return true
}
