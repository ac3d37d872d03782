package encounter

import (
	"time"

	"phasewatch/internal/core/countdown"
	"phasewatch/internal/core/model"
)

// EventType defines the type of encounter event.
type EventType string

const (
	EventTimer    EventType = "timer"
	EventDevices  EventType = "devices"
	EventPhase    EventType = "phase"
	EventCapacity EventType = "capacity"
	EventClosed   EventType = "closed"
)

// Event represents an encounter update for observers.
type Event struct {
	Type    EventType
	Timer   model.TimerName
	Reading countdown.Reading
	Slots   []bool
	Phase   int
	// Full is set on capacity events: true on entering the full state.
	Full    bool
	Message string
	At      time.Time
}

// Snapshot is the last rendered state of the whole encounter.
type Snapshot struct {
	Timers map[model.TimerName]countdown.Reading
	Slots  []bool
	Phase  int
}

func (snapshot Snapshot) clone() Snapshot {
	clone := Snapshot{
		Timers: make(map[model.TimerName]countdown.Reading, len(snapshot.Timers)),
		Slots:  append([]bool(nil), snapshot.Slots...),
		Phase:  snapshot.Phase,
	}
	for name, reading := range snapshot.Timers {
		clone.Timers[name] = reading
	}
	return clone
}
