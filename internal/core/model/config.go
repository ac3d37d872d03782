package model

import (
	"errors"
	"fmt"
)

// ErrUnknownTimer indicates a timer name outside the encounter's timer set.
var ErrUnknownTimer = errors.New("unknown timer")

// TimerName identifies one of the encounter timers.
type TimerName string

const (
	TimerDevice TimerName = "device"
	TimerLaser  TimerName = "laser"
	TimerArrow  TimerName = "arrow"
	TimerFMA    TimerName = "fma"
	TimerBreath TimerName = "breath"
	TimerBomb   TimerName = "bomb"
	TimerDive   TimerName = "dive"
)

// TimerNames lists every timer in display order.
var TimerNames = []TimerName{
	TimerDevice,
	TimerLaser,
	TimerArrow,
	TimerFMA,
	TimerBreath,
	TimerBomb,
	TimerDive,
}

// ParseTimerName returns the TimerName for a config key.
func ParseTimerName(value string) (TimerName, error) {
	for _, name := range TimerNames {
		if string(name) == value {
			return name, nil
		}
	}
	return "", fmt.Errorf("parse timer %q: %w", value, ErrUnknownTimer)
}

// TimerConfig is the static configuration of a single countdown.
type TimerConfig struct {
	// InitialValues holds the starting duration in seconds for each phase.
	InitialValues []int
	RedThreshold  int
	AutoReset     bool
	// PhaseIndexed timers pick InitialValues by the current phase; the rest always use index 0.
	PhaseIndexed bool
}

// Validate reports configuration errors for the timer.
func (config TimerConfig) Validate() error {
	if len(config.InitialValues) == 0 {
		return errors.New("initial values are empty")
	}
	for _, value := range config.InitialValues {
		if value < 0 {
			return fmt.Errorf("initial value %d is negative", value)
		}
	}
	if config.RedThreshold < 0 {
		return fmt.Errorf("red threshold %d is negative", config.RedThreshold)
	}
	return nil
}

// DefaultTimers returns the stock timer table for the encounter.
func DefaultTimers() map[TimerName]TimerConfig {
	return map[TimerName]TimerConfig{
		TimerDevice: {InitialValues: []int{60}, RedThreshold: 10, AutoReset: true},
		TimerLaser:  {InitialValues: []int{15}, RedThreshold: 5, AutoReset: true},
		TimerArrow:  {InitialValues: []int{15}, RedThreshold: 5, AutoReset: true},
		TimerFMA:    {InitialValues: []int{150}, RedThreshold: 20},
		TimerBreath: {InitialValues: []int{60, 45, 20, 20}, RedThreshold: 5, PhaseIndexed: true},
		TimerBomb:   {InitialValues: []int{10}, RedThreshold: 5, AutoReset: true},
		TimerDive:   {InitialValues: []int{20}, RedThreshold: 5},
	}
}
