package chord

import (
	"sort"
	"sync"
)

// Broadcaster is a Source fed by Publish. Input backends push raw key events
// into it and every subscriber sees them in publish order.
type Broadcaster struct {
	mu       sync.Mutex
	handlers map[int]func(KeyEvent)
	next     int
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{handlers: make(map[int]func(KeyEvent))}
}

// Subscribe registers handler and returns its detach function.
func (broadcaster *Broadcaster) Subscribe(handler func(KeyEvent)) func() {
	broadcaster.mu.Lock()
	id := broadcaster.next
	broadcaster.next++
	broadcaster.handlers[id] = handler
	broadcaster.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			broadcaster.mu.Lock()
			delete(broadcaster.handlers, id)
			broadcaster.mu.Unlock()
		})
	}
}

// Publish delivers ev to every subscriber in subscription order.
func (broadcaster *Broadcaster) Publish(ev KeyEvent) {
	broadcaster.mu.Lock()
	ids := make([]int, 0, len(broadcaster.handlers))
	for id := range broadcaster.handlers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	handlers := make([]func(KeyEvent), 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, broadcaster.handlers[id])
	}
	broadcaster.mu.Unlock()

	for _, handler := range handlers {
		handler(ev)
	}
}

// Subscribers returns the number of attached handlers.
func (broadcaster *Broadcaster) Subscribers() int {
	broadcaster.mu.Lock()
	defer broadcaster.mu.Unlock()
	return len(broadcaster.handlers)
}
