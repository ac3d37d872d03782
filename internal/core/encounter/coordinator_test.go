package encounter

import (
	"errors"
	"testing"
	"time"

	"phasewatch/internal/core/countdown"
	"phasewatch/internal/core/hotkey"
	"phasewatch/internal/core/loop"
	"phasewatch/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingAlerter struct{ calls int }

func (alerter *countingAlerter) Alert() { alerter.calls++ }

func newCoordinator(t *testing.T, options Options) (*Coordinator, *loop.Manual) {
	t.Helper()
	clock := loop.NewManual()
	coordinator, err := New(model.DefaultConfig(), clock, options)
	require.NoError(t, err)
	return coordinator, clock
}

func remaining(t *testing.T, coordinator *Coordinator, name model.TimerName) int {
	t.Helper()
	timer, err := coordinator.Timer(name)
	require.NoError(t, err)
	return timer.Remaining()
}

func locked(t *testing.T, coordinator *Coordinator, name model.TimerName) bool {
	t.Helper()
	timer, err := coordinator.Timer(name)
	require.NoError(t, err)
	return timer.IsLocked()
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	config := model.DefaultConfig()
	delete(config.Timers, model.TimerDive)

	_, err := New(config, loop.NewManual(), Options{})
	assert.Error(t, err)
}

func TestStartEncounterResetsStartTimers(t *testing.T) {
	coordinator, _ := newCoordinator(t, Options{})
	coordinator.IncrementPhase()

	require.NoError(t, coordinator.StartEncounter())

	assert.Equal(t, 0, coordinator.Phase())
	snapshot := coordinator.Snapshot()
	assert.Equal(t, countdown.Reading{Value: 60, Running: true, Armed: true}, snapshot.Timers[model.TimerDevice])
	assert.Equal(t, 150, snapshot.Timers[model.TimerFMA].Value)
	assert.True(t, snapshot.Timers[model.TimerBomb].Running)
	assert.False(t, snapshot.Timers[model.TimerLaser].Armed)
	assert.Equal(t, []bool{false, false, false, false}, snapshot.Slots)
}

func TestStartEncounterUnknownTimer(t *testing.T) {
	coordinator, _ := newCoordinator(t, Options{})
	err := coordinator.StartEncounter("kalos")
	assert.True(t, errors.Is(err, model.ErrUnknownTimer))
}

func TestCheckRoundTrip(t *testing.T) {
	coordinator, clock := newCoordinator(t, Options{})
	require.NoError(t, coordinator.StartEncounter())
	clock.Advance(5 * time.Second)

	ok, err := coordinator.BeginCheck()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 105, remaining(t, coordinator, model.TimerDevice))
	assert.Equal(t, 195, remaining(t, coordinator, model.TimerFMA))
	assert.True(t, locked(t, coordinator, model.TimerDevice))
	assert.Equal(t, 1, coordinator.Phase())

	ok, err = coordinator.BeginCheck()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 105, remaining(t, coordinator, model.TimerDevice))
	assert.Equal(t, 1, coordinator.Phase())

	ok, err = coordinator.FailCheck()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 55, remaining(t, coordinator, model.TimerDevice))
	assert.Equal(t, 145, remaining(t, coordinator, model.TimerFMA))
	assert.False(t, locked(t, coordinator, model.TimerFMA))
	assert.Equal(t, 0, coordinator.Phase())

	ok, err = coordinator.FailCheck()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, coordinator.Phase())
}

func TestBeginCheckIsAllOrNothing(t *testing.T) {
	coordinator, _ := newCoordinator(t, Options{})
	require.NoError(t, coordinator.StartEncounter())
	fma, err := coordinator.Timer(model.TimerFMA)
	require.NoError(t, err)
	fma.ApplyExtraTime(5)

	ok, err := coordinator.BeginCheck()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 60, remaining(t, coordinator, model.TimerDevice))
	assert.False(t, locked(t, coordinator, model.TimerDevice))
	assert.Equal(t, 155, fma.Remaining())
	assert.Equal(t, 0, coordinator.Phase())
}

func TestFailCheckIsAllOrNothing(t *testing.T) {
	coordinator, _ := newCoordinator(t, Options{})
	require.NoError(t, coordinator.StartEncounter())
	device, err := coordinator.Timer(model.TimerDevice)
	require.NoError(t, err)
	device.ApplyExtraTime(50)
	coordinator.IncrementPhase()

	ok, err := coordinator.FailCheck()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 110, device.Remaining())
	assert.Equal(t, 1, coordinator.Phase())
}

func TestCheckWithUnknownTimerDoesNothing(t *testing.T) {
	coordinator, _ := newCoordinator(t, Options{})
	require.NoError(t, coordinator.StartEncounter())

	_, err := coordinator.BeginCheck(model.TimerDevice, "kalos")
	assert.True(t, errors.Is(err, model.ErrUnknownTimer))
	assert.False(t, locked(t, coordinator, model.TimerDevice))
	assert.Equal(t, 0, coordinator.Phase())
}

func TestZeroTimersFillDevicesAndSwapWarning(t *testing.T) {
	alerter := &countingAlerter{}
	coordinator, clock := newCoordinator(t, Options{Alerter: alerter})
	events := coordinator.Subscribe(4096)
	require.NoError(t, coordinator.StartEncounter())

	clock.Advance(60 * time.Second)
	assert.Equal(t, 1, coordinator.DeviceCount())
	assert.Equal(t, 60, remaining(t, coordinator, model.TimerDevice))

	clock.Advance(90 * time.Second)
	assert.Equal(t, 3, coordinator.DeviceCount())
	fma, err := coordinator.Timer(model.TimerFMA)
	require.NoError(t, err)
	assert.False(t, fma.IsRunning())

	clock.Advance(30 * time.Second)
	assert.Equal(t, 4, coordinator.DeviceCount())
	assert.Equal(t, 1, alerter.calls)

	device, err := coordinator.Timer(model.TimerDevice)
	require.NoError(t, err)
	assert.True(t, device.IsWarning())

	clock.Advance(10 * time.Second)
	reading := device.Reading()
	assert.Equal(t, 50, reading.Value)
	assert.True(t, reading.Critical)
	assert.Equal(t, 60, device.Remaining())

	coordinator.ClearDevice()
	assert.False(t, device.IsWarning())
	assert.Equal(t, 3, coordinator.DeviceCount())

	var capacity []bool
	for len(events) > 0 {
		event := <-events
		if event.Type == EventCapacity {
			capacity = append(capacity, event.Full)
		}
	}
	assert.Equal(t, []bool{true, false}, capacity)
}

func TestDeviceCountIsBounded(t *testing.T) {
	alerter := &countingAlerter{}
	coordinator, _ := newCoordinator(t, Options{Alerter: alerter})

	coordinator.ClearDevice()
	assert.Equal(t, 0, coordinator.DeviceCount())
	for index := 0; index < 6; index++ {
		coordinator.AddDevice()
	}
	assert.Equal(t, 4, coordinator.DeviceCount())
	assert.Equal(t, 1, alerter.calls)
	assert.Equal(t, []bool{true, true, true, true}, coordinator.Snapshot().Slots)
}

func TestBreathFollowsPhase(t *testing.T) {
	coordinator, _ := newCoordinator(t, Options{})
	require.NoError(t, coordinator.StartEncounter())

	require.NoError(t, coordinator.ResetTimer(model.TimerBreath))
	assert.Equal(t, 60, remaining(t, coordinator, model.TimerBreath))

	_, err := coordinator.BeginCheck()
	require.NoError(t, err)
	require.NoError(t, coordinator.ResetTimer(model.TimerBreath))
	assert.Equal(t, 45, remaining(t, coordinator, model.TimerBreath))

	for coordinator.Phase() < 4 {
		coordinator.IncrementPhase()
	}
	err = coordinator.ResetTimer(model.TimerBreath)
	assert.True(t, errors.Is(err, countdown.ErrPhaseOutOfRange))
	assert.Equal(t, 45, remaining(t, coordinator, model.TimerBreath))
}

func TestBindTimeExtendsFMA(t *testing.T) {
	coordinator, _ := newCoordinator(t, Options{})
	require.NoError(t, coordinator.StartEncounter())

	bind, err := coordinator.Handler(model.ActionBind15)
	require.NoError(t, err)
	bind()
	assert.Equal(t, 165, remaining(t, coordinator, model.TimerFMA))

	coordinator.AddBindTime(10)
	assert.Equal(t, 175, remaining(t, coordinator, model.TimerFMA))
}

func TestHandlerCoversEveryAction(t *testing.T) {
	coordinator, _ := newCoordinator(t, Options{})
	for _, action := range model.Actions {
		fn, err := coordinator.Handler(action)
		require.NoError(t, err, action.String())
		assert.NotNil(t, fn)
	}

	_, err := coordinator.Handler(model.Action(99))
	assert.True(t, errors.Is(err, model.ErrUnknownAction))
}

func TestResetHandlersTargetTheirTimer(t *testing.T) {
	coordinator, _ := newCoordinator(t, Options{})
	cases := map[model.Action]model.TimerName{
		model.ActionResetBreath: model.TimerBreath,
		model.ActionResetDive:   model.TimerDive,
		model.ActionResetLaser:  model.TimerLaser,
		model.ActionResetArrows: model.TimerArrow,
		model.ActionResetBombs:  model.TimerBomb,
		model.ActionResetFMA:    model.TimerFMA,
	}
	for action, name := range cases {
		fn, err := coordinator.Handler(action)
		require.NoError(t, err)
		fn()
		timer, err := coordinator.Timer(name)
		require.NoError(t, err)
		assert.True(t, timer.IsRunning(), action.String())
	}
}

func TestBindHotkeysDispatchesActions(t *testing.T) {
	closed := false
	coordinator, _ := newCoordinator(t, Options{OnClose: func() { closed = true }})
	coordinator.config.Hotkeys = map[model.Action]string{
		model.ActionStartTimers: "Ctrl+S",
		model.ActionAddDevice:   "f2",
	}
	registry := hotkey.NewRegistry(nil)
	require.NoError(t, coordinator.BindHotkeys(registry))
	assert.Equal(t, []string{"ctrl+s", "esc", "f2"}, registry.Chords())

	events := coordinator.Subscribe(64)
	assert.True(t, registry.Dispatch("ctrl+s"))
	assert.Equal(t, 60, remaining(t, coordinator, model.TimerDevice))
	assert.True(t, registry.Dispatch("F2"))
	assert.Equal(t, 1, coordinator.DeviceCount())

	assert.True(t, registry.Dispatch("Escape"))
	assert.True(t, closed)
	device, err := coordinator.Timer(model.TimerDevice)
	require.NoError(t, err)
	assert.False(t, device.IsRunning())

	var last Event
	for event := range events {
		last = event
	}
	assert.Equal(t, EventClosed, last.Type)
}

func TestBindHotkeysRejectsDuplicates(t *testing.T) {
	coordinator, _ := newCoordinator(t, Options{})
	coordinator.config.Hotkeys = map[model.Action]string{
		model.ActionBeginCheck: "ctrl+1",
		model.ActionFailCheck:  "Control+1",
	}
	registry := hotkey.NewRegistry(nil)

	err := coordinator.BindHotkeys(registry)
	assert.True(t, errors.Is(err, hotkey.ErrDuplicateHotkey))
	assert.Empty(t, registry.Chords())
}

func TestBindHotkeysRejectsReorderedDuplicates(t *testing.T) {
	coordinator, _ := newCoordinator(t, Options{})
	coordinator.config.Hotkeys = map[model.Action]string{
		model.ActionAddDevice:   "ctrl+shift+p",
		model.ActionClearDevice: "shift+ctrl+p",
	}
	registry := hotkey.NewRegistry(nil)

	err := coordinator.BindHotkeys(registry)
	assert.True(t, errors.Is(err, hotkey.ErrDuplicateHotkey))
	assert.Empty(t, registry.Chords())
}

func TestBoundHotkeyFiresInAnyModifierOrder(t *testing.T) {
	coordinator, _ := newCoordinator(t, Options{})
	coordinator.config.Hotkeys = map[model.Action]string{
		model.ActionAddDevice: "ctrl+shift+p",
	}
	registry := hotkey.NewRegistry(nil)
	require.NoError(t, coordinator.BindHotkeys(registry))

	assert.True(t, registry.Dispatch("shift+ctrl+p"))
	assert.Equal(t, 1, coordinator.DeviceCount())
}

func TestPhaseEventsOnEveryWrite(t *testing.T) {
	coordinator, _ := newCoordinator(t, Options{})
	events := coordinator.Subscribe(16)

	require.NoError(t, coordinator.StartEncounter(model.TimerDive))
	coordinator.DecrementPhase()

	var phases []int
	for len(events) > 0 {
		event := <-events
		if event.Type == EventPhase {
			phases = append(phases, event.Phase)
		}
	}
	assert.Equal(t, []int{0, 0}, phases)
}

func TestStopIsIdempotent(t *testing.T) {
	coordinator, clock := newCoordinator(t, Options{})
	require.NoError(t, coordinator.StartEncounter())
	events := coordinator.Subscribe(1)

	coordinator.Stop()
	coordinator.Stop()
	assert.Equal(t, 0, clock.Pending())

	for range events {
	}
	late := coordinator.Subscribe(1)
	_, open := <-late
	assert.False(t, open)
}
