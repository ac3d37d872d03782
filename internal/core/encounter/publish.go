package encounter

import (
	"phasewatch/internal/core/countdown"
	"phasewatch/internal/core/model"
)

// Subscribe registers a new observer channel. Slow observers miss events
// rather than stall the loop; Snapshot always has the latest state.
func (coordinator *Coordinator) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	coordinator.mu.Lock()
	if coordinator.stopped {
		coordinator.mu.Unlock()
		close(ch)
		return ch
	}
	coordinator.subscribers = append(coordinator.subscribers, ch)
	coordinator.mu.Unlock()
	return ch
}

// Snapshot returns a copy of the latest rendered state.
func (coordinator *Coordinator) Snapshot() Snapshot {
	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()
	return coordinator.snapshot.clone()
}

func (coordinator *Coordinator) publishTimer(name model.TimerName, reading countdown.Reading) {
	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()
	coordinator.snapshot.Timers[name] = reading
	coordinator.emitLocked(Event{Type: EventTimer, Timer: name, Reading: reading, At: coordinator.now()})
}

func (coordinator *Coordinator) publishSlots(slots []bool) {
	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()
	coordinator.snapshot.Slots = append([]bool(nil), slots...)
	coordinator.emitLocked(Event{Type: EventDevices, Slots: slots, At: coordinator.now()})
}

func (coordinator *Coordinator) publishPhase(value int) {
	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()
	coordinator.snapshot.Phase = value
	coordinator.emitLocked(Event{Type: EventPhase, Phase: value, At: coordinator.now()})
}

func (coordinator *Coordinator) emit(event Event) {
	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()
	if event.At.IsZero() {
		event.At = coordinator.now()
	}
	coordinator.emitLocked(event)
}

func (coordinator *Coordinator) emitLocked(event Event) {
	for _, ch := range coordinator.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
