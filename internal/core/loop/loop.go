// Package loop provides the single logical thread the encounter core runs on.
//
// Every timer tick, hotkey dispatch and counter mutation is executed by Loop.Run
// one after another, so core state needs no locking. Other goroutines (Fyne
// callbacks, OS hotkey channels, time.AfterFunc) hand work over with Post.
package loop

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler schedules callbacks on the core thread.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Loop is a cooperative event loop backed by a buffered queue.
type Loop struct {
	queue    chan func()
	done     chan struct{}
	stopOnce sync.Once
	logger   *logrus.Logger
}

// New creates a loop; buffer sizes the pending work queue.
func New(buffer int, logger *logrus.Logger) *Loop {
	if buffer <= 0 {
		buffer = 1
	}
	return &Loop{
		queue:  make(chan func(), buffer),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Run executes posted work until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	l.logger.Debug("event loop started")
	defer l.logger.Debug("event loop stopped")
	for {
		select {
		case <-ctx.Done():
			l.stop()
			return
		case fn := <-l.queue:
			fn()
		}
	}
}

// Post enqueues fn. It blocks while the queue is full and returns false once
// the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do runs fn on the loop and waits for it to finish.
// It must not be called from the loop goroutine.
func (l *Loop) Do(fn func()) bool {
	reply := make(chan struct{})
	if !l.Post(func() {
		defer close(reply)
		fn()
	}) {
		return false
	}
	select {
	case <-reply:
		return true
	case <-l.done:
		return false
	}
}

// Done is closed once the loop has stopped.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// AfterFunc runs f on the loop after d. A stopped timer never runs f, even
// when its deadline elapsed and the callback is already queued.
func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	timer := &loopTimer{}
	timer.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if timer.fire() {
				f()
			}
		})
	})
	return timer
}

func (l *Loop) stop() {
	l.stopOnce.Do(func() {
		close(l.done)
	})
}

type loopTimer struct {
	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	fired   bool
}

func (timer *loopTimer) Stop() bool {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.stopped || timer.fired {
		return false
	}
	timer.stopped = true
	timer.timer.Stop()
	return true
}

func (timer *loopTimer) fire() bool {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.stopped {
		return false
	}
	timer.fired = true
	return true
}
