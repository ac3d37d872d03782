// Package countdown contains the per-activity countdown state machine.
//
// A Timer is not safe for concurrent use. All methods, including the tick
// callbacks it schedules, are expected to run on the encounter loop.
package countdown

import (
	"errors"
	"fmt"
	"time"

	"phasewatch/internal/core/loop"
	"phasewatch/internal/core/model"
	"phasewatch/internal/logs"

	"github.com/sirupsen/logrus"
)

// ErrPhaseOutOfRange indicates the phase selector returned an index without an initial value.
var ErrPhaseOutOfRange = errors.New("phase index out of range")

const (
	// TickInterval is the countdown resolution.
	TickInterval = time.Second
	// DefaultWarningSeconds is the grace period shown in warning mode.
	DefaultWarningSeconds = 60
)

// Options contains runtime options for a Timer.
type Options struct {
	// PhaseSelector picks the index into InitialValues on every reset.
	PhaseSelector  func() int
	WarningSeconds int
	Logger         *logrus.Logger
}

// Reading is the render projection of a timer.
type Reading struct {
	Value    int
	Critical bool
	Warning  bool
	Locked   bool
	Running  bool
	// Armed is false until the first reset.
	Armed bool
}

// Timer is a countdown with auto-reset, lockable extra time and a warning sub-mode.
type Timer struct {
	name          model.TimerName
	config        model.TimerConfig
	selectPhase   func() int
	scheduler     loop.Scheduler
	logger        *logrus.Logger
	warningLength int

	remaining        int
	warningRemaining int
	running          bool
	warning          bool
	armed            bool

	locked         bool
	savedRemaining int

	zeroFired bool
	onZero    func()
	render    func(Reading)
	pending   loop.Timer
}

// New creates a stopped timer.
func New(name model.TimerName, config model.TimerConfig, scheduler loop.Scheduler, options Options) *Timer {
	if options.PhaseSelector == nil {
		options.PhaseSelector = func() int { return 0 }
	}
	if options.WarningSeconds <= 0 {
		options.WarningSeconds = DefaultWarningSeconds
	}
	if options.Logger == nil {
		options.Logger = logs.Discard()
	}
	config.InitialValues = append([]int(nil), config.InitialValues...)

	return &Timer{
		name:             name,
		config:           config,
		selectPhase:      options.PhaseSelector,
		scheduler:        scheduler,
		logger:           options.Logger,
		warningLength:    options.WarningSeconds,
		warningRemaining: options.WarningSeconds,
	}
}

// Name returns the timer name.
func (timer *Timer) Name() model.TimerName {
	return timer.name
}

// Config returns the static configuration.
func (timer *Timer) Config() model.TimerConfig {
	return timer.config
}

// SetRenderer registers the function called after every state change.
func (timer *Timer) SetRenderer(render func(Reading)) {
	timer.render = render
	timer.renderState()
}

// AssociateZeroCallback registers the function fired when the timer reaches zero.
func (timer *Timer) AssociateZeroCallback(callback func()) {
	timer.onZero = callback
}

// Reset restarts the countdown from the initial value of the selected phase.
func (timer *Timer) Reset() error {
	index := timer.selectPhase()
	if index < 0 || index >= len(timer.config.InitialValues) {
		return fmt.Errorf("reset %s: phase %d with %d initial values: %w",
			timer.name, index, len(timer.config.InitialValues), ErrPhaseOutOfRange)
	}

	timer.cancelPending()
	timer.remaining = timer.config.InitialValues[index]
	timer.zeroFired = false
	timer.armed = true
	timer.running = true
	timer.schedule()
	timer.renderState()
	return nil
}

// AddTime extends the countdown without remembering the previous value.
// Ignored while extra time is locked in.
func (timer *Timer) AddTime(delta int) {
	if timer.locked {
		return
	}
	timer.remaining += delta
	if timer.remaining < 0 {
		timer.remaining = 0
	}
	timer.armed = true
	timer.running = true
	timer.schedule()
	timer.renderState()
}

// ApplyExtraTime adds delta and locks until it is consumed or removed.
// It reports false when extra time is already applied.
func (timer *Timer) ApplyExtraTime(delta int) (int, bool) {
	if timer.locked {
		return 0, false
	}
	timer.savedRemaining = timer.remaining
	timer.remaining += delta
	if timer.remaining < 0 {
		timer.remaining = 0
	}
	timer.locked = true
	timer.armed = true
	timer.running = true
	timer.schedule()
	timer.renderState()
	return delta, true
}

// RemoveExtraTime rolls back unconsumed extra time and returns the amount removed.
// It reports false when there is nothing to roll back.
func (timer *Timer) RemoveExtraTime() (int, bool) {
	if !timer.locked || timer.savedRemaining >= timer.remaining {
		return 0, false
	}
	differential := timer.remaining - timer.savedRemaining
	timer.remaining = timer.savedRemaining
	timer.unlock()
	timer.running = true
	timer.schedule()
	timer.renderState()
	return differential, true
}

// IsLocked reports whether applied extra time is still pending.
func (timer *Timer) IsLocked() bool {
	return timer.locked
}

// SwapToWarning enters warning mode with a fresh grace period.
func (timer *Timer) SwapToWarning() {
	timer.warning = true
	timer.warningRemaining = timer.warningLength
	timer.renderState()
}

// SwapToNormal leaves warning mode.
func (timer *Timer) SwapToNormal() {
	timer.warning = false
	timer.renderState()
}

// Stop cancels the pending tick.
func (timer *Timer) Stop() {
	timer.cancelPending()
	timer.running = false
	timer.renderState()
}

// Remaining returns the underlying countdown value in seconds.
func (timer *Timer) Remaining() int {
	return timer.remaining
}

// IsWarning reports whether the timer is in warning mode.
func (timer *Timer) IsWarning() bool {
	return timer.warning
}

// IsRunning reports whether a tick is scheduled.
func (timer *Timer) IsRunning() bool {
	return timer.running
}

// Reading returns the current render projection.
func (timer *Timer) Reading() Reading {
	value := timer.remaining
	if timer.warning {
		value = timer.warningRemaining
	}
	return Reading{
		Value:    value,
		Critical: timer.remaining <= timer.config.RedThreshold || timer.warning,
		Warning:  timer.warning,
		Locked:   timer.locked,
		Running:  timer.running,
		Armed:    timer.armed,
	}
}

func (timer *Timer) tick() {
	timer.pending = nil
	if !timer.running {
		return
	}

	if timer.remaining > 0 {
		if timer.warning {
			if timer.warningRemaining > 0 {
				timer.warningRemaining--
			}
			if timer.remaining > timer.warningLength {
				timer.remaining--
			}
		} else {
			timer.remaining--
		}
	}

	if timer.locked && timer.remaining <= timer.savedRemaining {
		timer.unlock()
	}

	if timer.remaining == 0 {
		timer.reachZero()
		return
	}

	timer.schedule()
	timer.renderState()
}

func (timer *Timer) reachZero() {
	if timer.config.AutoReset {
		if err := timer.Reset(); err != nil {
			timer.logger.WithError(err).Errorf("auto reset of %s failed", timer.name)
			timer.running = false
			timer.renderState()
			return
		}
	} else {
		timer.running = false
		timer.renderState()
	}

	if timer.zeroFired {
		return
	}
	timer.zeroFired = true
	timer.logger.Debugf("%s reached zero", timer.name)
	if timer.onZero != nil {
		timer.onZero()
	}
}

func (timer *Timer) unlock() {
	timer.locked = false
	timer.savedRemaining = 0
}

// schedule replaces any pending tick so at most one is outstanding.
func (timer *Timer) schedule() {
	timer.cancelPending()
	var handle loop.Timer
	handle = timer.scheduler.AfterFunc(TickInterval, func() {
		if timer.pending != handle {
			return
		}
		timer.tick()
	})
	timer.pending = handle
}

func (timer *Timer) cancelPending() {
	if timer.pending != nil {
		timer.pending.Stop()
		timer.pending = nil
	}
}

func (timer *Timer) renderState() {
	if timer.render != nil {
		timer.render(timer.Reading())
	}
}
