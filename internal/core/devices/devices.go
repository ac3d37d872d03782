package devices

// Counter is a bounded up/down counter over a fixed number of slots.
// Slots [0, Count()) are active, the rest inactive.
type Counter struct {
	slots    []bool
	count    int
	onEnter  func()
	onLeave  func()
	renderer func([]bool)
}

// New creates a counter with the given capacity and initial count.
func New(capacity, initial int) *Counter {
	if capacity < 0 {
		capacity = 0
	}
	if initial < 0 {
		initial = 0
	}
	if initial > capacity {
		initial = capacity
	}
	counter := &Counter{slots: make([]bool, capacity), count: initial}
	for index := 0; index < initial; index++ {
		counter.slots[index] = true
	}
	return counter
}

// AssociateMaxCallbacks registers the edge callbacks for entering and leaving the full state.
func (counter *Counter) AssociateMaxCallbacks(onEnter, onLeave func()) {
	counter.onEnter = onEnter
	counter.onLeave = onLeave
}

// SetRenderer registers the slot view and renders once.
func (counter *Counter) SetRenderer(renderer func([]bool)) {
	counter.renderer = renderer
	counter.ForceRender()
}

// Increment activates the next slot. It is a no-op when full.
func (counter *Counter) Increment() {
	if counter.count == len(counter.slots) {
		return
	}
	counter.slots[counter.count] = true
	counter.count++
	counter.ForceRender()

	if counter.count == len(counter.slots) && counter.onEnter != nil {
		counter.onEnter()
	}
}

// Decrement frees the last active slot. It is a no-op when empty.
// Leaving the full state fires the leave callback before the count changes.
func (counter *Counter) Decrement() {
	if counter.count == 0 {
		return
	}
	if counter.count == len(counter.slots) && counter.onLeave != nil {
		counter.onLeave()
	}
	counter.count--
	counter.slots[counter.count] = false
	counter.ForceRender()
}

// ForceRender pushes the full slot state to the renderer.
func (counter *Counter) ForceRender() {
	if counter.renderer != nil {
		counter.renderer(counter.Slots())
	}
}

// Count returns the number of active slots.
func (counter *Counter) Count() int {
	return counter.count
}

// Capacity returns the slot count.
func (counter *Counter) Capacity() int {
	return len(counter.slots)
}

// Full reports whether every slot is active.
func (counter *Counter) Full() bool {
	return counter.count == len(counter.slots)
}

// Slots returns a copy of the slot states.
func (counter *Counter) Slots() []bool {
	return append([]bool(nil), counter.slots...)
}
