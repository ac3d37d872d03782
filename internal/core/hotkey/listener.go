package hotkey

import (
	"sync"

	"phasewatch/internal/core/chord"
)

// Listener turns a live key event stream into registry dispatches.
// Chords are assembled on the source goroutine and dispatched through post,
// which is expected to hop onto the encounter loop.
type Listener struct {
	mu          sync.Mutex
	builder     chord.Builder
	registry    *Registry
	post        func(func()) bool
	unsubscribe func()
}

// NewListener creates a detached listener. A nil post dispatches inline.
func NewListener(registry *Registry, post func(func()) bool) *Listener {
	if post == nil {
		post = func(fn func()) bool {
			fn()
			return true
		}
	}
	return &Listener{registry: registry, post: post}
}

// Attach subscribes to source, replacing any previous subscription.
func (listener *Listener) Attach(source chord.Source) {
	listener.Detach()
	unsubscribe := source.Subscribe(listener.handle)

	listener.mu.Lock()
	listener.unsubscribe = unsubscribe
	listener.mu.Unlock()
}

// Detach stops listening and forgets held modifiers.
func (listener *Listener) Detach() {
	listener.mu.Lock()
	unsubscribe := listener.unsubscribe
	listener.unsubscribe = nil
	listener.builder.Reset()
	listener.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (listener *Listener) handle(ev chord.KeyEvent) {
	listener.mu.Lock()
	value, ok := listener.builder.Feed(ev)
	listener.mu.Unlock()
	if !ok {
		return
	}
	listener.post(func() {
		listener.registry.Dispatch(value)
	})
}
