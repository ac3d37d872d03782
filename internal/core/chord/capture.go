package chord

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"phasewatch/internal/logs"

	"github.com/sirupsen/logrus"
)

var (
	// ErrUnknownSession indicates a session id that was never issued or was cancelled.
	ErrUnknownSession = errors.New("unknown capture session")
	// ErrPending indicates the session has not seen a complete chord yet.
	ErrPending = errors.New("capture pending")
	// ErrCancelled is returned by Wait when CancelAll discards the session.
	ErrCancelled = errors.New("capture cancelled")
)

type session struct {
	builder  Builder
	chord    string
	resolved bool
	done     chan struct{}
}

// Capture records one chord per session from a shared key event source.
// Sessions are independent: each has its own held-modifier state.
type Capture struct {
	mu          sync.Mutex
	source      Source
	sessions    map[int]*session
	next        int
	unsubscribe func()
	cancelled   chan struct{}
	logger      *logrus.Logger
}

// NewCapture creates a capture manager over source.
func NewCapture(source Source, logger *logrus.Logger) *Capture {
	if logger == nil {
		logger = logs.Discard()
	}
	return &Capture{
		source:    source,
		sessions:  make(map[int]*session),
		cancelled: make(chan struct{}),
		logger:    logger,
	}
}

// Start opens a new capture session and returns its id.
func (capture *Capture) Start() int {
	capture.mu.Lock()
	defer capture.mu.Unlock()

	if capture.unsubscribe == nil {
		capture.unsubscribe = capture.source.Subscribe(capture.handle)
	}
	id := capture.next
	capture.next++
	capture.sessions[id] = &session{done: make(chan struct{})}
	capture.logger.Debugf("capture session %d started", id)
	return id
}

// Resolved reports whether the session has recorded its chord.
func (capture *Capture) Resolved(id int) bool {
	capture.mu.Lock()
	defer capture.mu.Unlock()
	current, ok := capture.sessions[id]
	return ok && current.resolved
}

// Chord returns the recorded chord of a session.
func (capture *Capture) Chord(id int) (string, error) {
	capture.mu.Lock()
	defer capture.mu.Unlock()
	current, ok := capture.sessions[id]
	if !ok {
		return "", fmt.Errorf("chord of session %d: %w", id, ErrUnknownSession)
	}
	if !current.resolved {
		return "", fmt.Errorf("chord of session %d: %w", id, ErrPending)
	}
	return current.chord, nil
}

// Done returns a channel closed when the session resolves.
func (capture *Capture) Done(id int) (<-chan struct{}, error) {
	capture.mu.Lock()
	defer capture.mu.Unlock()
	current, ok := capture.sessions[id]
	if !ok {
		return nil, fmt.Errorf("done of session %d: %w", id, ErrUnknownSession)
	}
	return current.done, nil
}

// Wait blocks until the session resolves, is cancelled, or ctx ends.
func (capture *Capture) Wait(ctx context.Context, id int) (string, error) {
	capture.mu.Lock()
	current, ok := capture.sessions[id]
	cancelled := capture.cancelled
	capture.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("wait for session %d: %w", id, ErrUnknownSession)
	}

	select {
	case <-current.done:
		capture.mu.Lock()
		defer capture.mu.Unlock()
		return current.chord, nil
	case <-cancelled:
		return "", fmt.Errorf("wait for session %d: %w", id, ErrCancelled)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Chords returns the recorded chord of every resolved session.
func (capture *Capture) Chords() map[int]string {
	capture.mu.Lock()
	defer capture.mu.Unlock()
	found := make(map[int]string)
	for id, current := range capture.sessions {
		if current.resolved {
			found[id] = current.chord
		}
	}
	return found
}

// Count returns the number of live sessions, pending or resolved.
func (capture *Capture) Count() int {
	capture.mu.Lock()
	defer capture.mu.Unlock()
	return len(capture.sessions)
}

// CancelAll detaches from the source and discards every session.
func (capture *Capture) CancelAll() {
	capture.mu.Lock()
	unsubscribe := capture.unsubscribe
	capture.unsubscribe = nil
	capture.sessions = make(map[int]*session)
	close(capture.cancelled)
	capture.cancelled = make(chan struct{})
	capture.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (capture *Capture) handle(ev KeyEvent) {
	capture.mu.Lock()
	defer capture.mu.Unlock()
	for id, current := range capture.sessions {
		if current.resolved {
			continue
		}
		chord, ok := current.builder.Feed(ev)
		if !ok {
			continue
		}
		current.chord = chord
		current.resolved = true
		close(current.done)
		capture.logger.Infof("capture session %d recorded %s", id, chord)
	}
}
