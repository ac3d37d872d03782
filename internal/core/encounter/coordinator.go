// Package encounter wires the countdowns, the device counter and the phase
// controller into a single overlay session.
//
// Every mutating method must run on the encounter loop. Subscribe, Snapshot
// and Stop may be called from any goroutine.
package encounter

import (
	"fmt"
	"sync"
	"time"

	"phasewatch/internal/core/countdown"
	"phasewatch/internal/core/devices"
	"phasewatch/internal/core/hotkey"
	"phasewatch/internal/core/loop"
	"phasewatch/internal/core/model"
	"phasewatch/internal/core/phase"
	"phasewatch/internal/logs"

	"github.com/sirupsen/logrus"
)

// Alerter is notified when the device counter fills up.
type Alerter interface {
	Alert()
}

// Options contains runtime collaborators for a Coordinator.
type Options struct {
	Logger  *logrus.Logger
	Alerter Alerter
	// OnClose runs after the close action stopped the session.
	OnClose func()
	Now     func() time.Time
}

// Coordinator owns one encounter session.
type Coordinator struct {
	config  model.Config
	timers  map[model.TimerName]*countdown.Timer
	devices *devices.Counter
	phase   *phase.Controller
	alerter Alerter
	onClose func()
	now     func() time.Time
	logger  *logrus.Logger

	mu          sync.Mutex
	subscribers []chan Event
	snapshot    Snapshot
	stopped     bool
}

// New builds a session from config. Timers stay idle until StartEncounter or
// an explicit reset.
func New(config model.Config, scheduler loop.Scheduler, options Options) (*Coordinator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("encounter config: %w", err)
	}
	if options.Logger == nil {
		options.Logger = logs.Discard()
	}
	if options.Now == nil {
		options.Now = time.Now
	}

	coordinator := &Coordinator{
		config:  config.Clone(),
		timers:  make(map[model.TimerName]*countdown.Timer, len(model.TimerNames)),
		phase:   phase.New(),
		alerter: options.Alerter,
		onClose: options.OnClose,
		now:     options.Now,
		logger:  options.Logger,
		snapshot: Snapshot{
			Timers: make(map[model.TimerName]countdown.Reading, len(model.TimerNames)),
		},
	}

	for _, name := range model.TimerNames {
		timerConfig := coordinator.config.Timers[name]
		timerOptions := countdown.Options{
			WarningSeconds: coordinator.config.WarningSeconds,
			Logger:         coordinator.logger,
		}
		if timerConfig.PhaseIndexed {
			timerOptions.PhaseSelector = coordinator.phase.Phase
		}
		timer := countdown.New(name, timerConfig, scheduler, timerOptions)
		timerName := name
		timer.SetRenderer(func(reading countdown.Reading) {
			coordinator.publishTimer(timerName, reading)
		})
		coordinator.timers[name] = timer
	}

	coordinator.devices = devices.New(coordinator.config.DeviceCapacity, 0)
	coordinator.devices.SetRenderer(coordinator.publishSlots)
	coordinator.phase.Subscribe(coordinator.publishPhase)

	coordinator.wire()
	return coordinator, nil
}

func (coordinator *Coordinator) wire() {
	deviceTimer := coordinator.timers[model.TimerDevice]
	coordinator.timers[model.TimerFMA].AssociateZeroCallback(coordinator.devices.Increment)
	deviceTimer.AssociateZeroCallback(coordinator.devices.Increment)

	coordinator.devices.AssociateMaxCallbacks(
		func() {
			deviceTimer.SwapToWarning()
			coordinator.logger.Info("device capacity reached")
			if coordinator.alerter != nil {
				coordinator.alerter.Alert()
			}
			coordinator.emit(Event{Type: EventCapacity, Full: true, Message: "device capacity reached"})
		},
		func() {
			deviceTimer.SwapToNormal()
			coordinator.emit(Event{Type: EventCapacity, Full: false, Message: "device slot freed"})
		},
	)
}

// StartEncounter moves to phase zero and resets the named timers, or the
// configured start set when names is empty.
func (coordinator *Coordinator) StartEncounter(names ...model.TimerName) error {
	if len(names) == 0 {
		names = coordinator.config.StartTimers
	}
	timers, err := coordinator.lookup(names)
	if err != nil {
		return fmt.Errorf("start encounter: %w", err)
	}
	if err := coordinator.phase.Set(0); err != nil {
		return fmt.Errorf("start encounter: %w", err)
	}
	for _, timer := range timers {
		if err := timer.Reset(); err != nil {
			return fmt.Errorf("start encounter: %w", err)
		}
	}
	coordinator.logger.Infof("encounter started with %v", names)
	return nil
}

// BeginCheck applies the check bonus to every affected timer and advances
// the phase. Nothing changes when any of them is already locked.
func (coordinator *Coordinator) BeginCheck(names ...model.TimerName) (bool, error) {
	if len(names) == 0 {
		names = coordinator.config.CheckTimers
	}
	timers, err := coordinator.lookup(names)
	if err != nil {
		return false, fmt.Errorf("begin check: %w", err)
	}
	for _, timer := range timers {
		if timer.IsLocked() {
			coordinator.logger.Debugf("begin check refused: %s is locked", timer.Name())
			return false, nil
		}
	}
	for _, timer := range timers {
		timer.ApplyExtraTime(coordinator.config.CheckBonus)
	}
	coordinator.phase.Increment()
	return true, nil
}

// FailCheck rolls back the check bonus and steps the phase back. Nothing
// changes unless every affected timer is locked.
func (coordinator *Coordinator) FailCheck(names ...model.TimerName) (bool, error) {
	if len(names) == 0 {
		names = coordinator.config.CheckTimers
	}
	timers, err := coordinator.lookup(names)
	if err != nil {
		return false, fmt.Errorf("fail check: %w", err)
	}
	for _, timer := range timers {
		if !timer.IsLocked() {
			coordinator.logger.Debugf("fail check refused: %s is not locked", timer.Name())
			return false, nil
		}
	}
	for _, timer := range timers {
		timer.RemoveExtraTime()
	}
	coordinator.phase.Decrement()
	return true, nil
}

// ResetTimer restarts a single timer.
func (coordinator *Coordinator) ResetTimer(name model.TimerName) error {
	timer, err := coordinator.Timer(name)
	if err != nil {
		return err
	}
	return timer.Reset()
}

// AddBindTime extends the FMA timer by seconds.
func (coordinator *Coordinator) AddBindTime(seconds int) {
	coordinator.timers[model.TimerFMA].AddTime(seconds)
}

// ClearDevice frees one device slot.
func (coordinator *Coordinator) ClearDevice() {
	coordinator.devices.Decrement()
}

// AddDevice occupies one device slot.
func (coordinator *Coordinator) AddDevice() {
	coordinator.devices.Increment()
}

// IncrementPhase advances the phase by one.
func (coordinator *Coordinator) IncrementPhase() {
	coordinator.phase.Increment()
}

// DecrementPhase steps the phase back by one.
func (coordinator *Coordinator) DecrementPhase() {
	coordinator.phase.Decrement()
}

// Phase returns the current phase index.
func (coordinator *Coordinator) Phase() int {
	return coordinator.phase.Phase()
}

// DeviceCount returns the number of occupied device slots.
func (coordinator *Coordinator) DeviceCount() int {
	return coordinator.devices.Count()
}

// Timer returns the named countdown.
func (coordinator *Coordinator) Timer(name model.TimerName) (*countdown.Timer, error) {
	timer, ok := coordinator.timers[name]
	if !ok {
		return nil, fmt.Errorf("timer %q: %w", name, model.ErrUnknownTimer)
	}
	return timer, nil
}

// Close stops the session and runs the close callback.
func (coordinator *Coordinator) Close() {
	coordinator.Stop()
	if coordinator.onClose != nil {
		coordinator.onClose()
	}
}

// Stop halts every timer and closes observers. It is safe to call twice.
func (coordinator *Coordinator) Stop() {
	coordinator.mu.Lock()
	if coordinator.stopped {
		coordinator.mu.Unlock()
		return
	}
	coordinator.stopped = true
	coordinator.mu.Unlock()

	for _, name := range model.TimerNames {
		coordinator.timers[name].Stop()
	}

	coordinator.mu.Lock()
	coordinator.emitLocked(Event{Type: EventClosed, At: coordinator.now()})
	events := coordinator.subscribers
	coordinator.subscribers = nil
	coordinator.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
	coordinator.logger.Info("encounter stopped")
}

func (coordinator *Coordinator) lookup(names []model.TimerName) ([]*countdown.Timer, error) {
	timers := make([]*countdown.Timer, 0, len(names))
	for _, name := range names {
		timer, err := coordinator.Timer(name)
		if err != nil {
			return nil, err
		}
		timers = append(timers, timer)
	}
	return timers, nil
}

// BindHotkeys registers every configured action chord on registry. The close
// action falls back to esc when unset. Two actions sharing a chord are rejected
// before anything is bound.
func (coordinator *Coordinator) BindHotkeys(registry *hotkey.Registry) error {
	bindings, err := hotkey.Plan(coordinator.config.Hotkeys)
	if err != nil {
		return err
	}

	for _, action := range model.Actions {
		value, ok := bindings[action]
		if !ok {
			continue
		}
		fn, err := coordinator.Handler(action)
		if err != nil {
			return err
		}
		if err := registry.Bind(value, fn); err != nil {
			return fmt.Errorf("hotkey for %s: %w", action, err)
		}
		coordinator.logger.Debugf("bound %s to %s", value, action)
	}
	return nil
}
