package phase

import (
	"errors"
	"fmt"
)

// ErrNegativePhase indicates an attempt to set a phase below zero.
var ErrNegativePhase = errors.New("phase must not be negative")

// Controller tracks the encounter phase index.
//
// Every write notifies subscribers exactly once, including writes that leave
// the value unchanged.
type Controller struct {
	phase       int
	subscribers []func(int)
}

// New creates a controller at phase zero.
func New() *Controller {
	return &Controller{}
}

// Phase returns the current phase index.
func (controller *Controller) Phase() int {
	return controller.phase
}

// Subscribe registers fn to be called with the new phase after every write.
func (controller *Controller) Subscribe(fn func(int)) {
	controller.subscribers = append(controller.subscribers, fn)
}

// Increment advances the phase by one.
func (controller *Controller) Increment() {
	controller.write(controller.phase + 1)
}

// Decrement steps the phase back by one, stopping at zero.
func (controller *Controller) Decrement() {
	next := controller.phase - 1
	if next < 0 {
		next = 0
	}
	controller.write(next)
}

// Set writes the phase directly.
func (controller *Controller) Set(value int) error {
	if value < 0 {
		return fmt.Errorf("set phase %d: %w", value, ErrNegativePhase)
	}
	controller.write(value)
	return nil
}

func (controller *Controller) write(value int) {
	controller.phase = value
	for _, fn := range controller.subscribers {
		fn(value)
	}
}
