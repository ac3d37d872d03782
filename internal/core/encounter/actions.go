package encounter

import (
	"fmt"

	"phasewatch/internal/core/model"
)

// Handler returns the callback for action. Errors raised by the callback are
// logged, since hotkeys and menu items have nobody to return them to.
func (coordinator *Coordinator) Handler(action model.Action) (func(), error) {
	switch action {
	case model.ActionStartTimers:
		return coordinator.report(action, func() error { return coordinator.StartEncounter() }), nil
	case model.ActionBeginCheck:
		return coordinator.report(action, func() error {
			_, err := coordinator.BeginCheck()
			return err
		}), nil
	case model.ActionFailCheck:
		return coordinator.report(action, func() error {
			_, err := coordinator.FailCheck()
			return err
		}), nil
	case model.ActionBind10:
		return func() { coordinator.AddBindTime(10) }, nil
	case model.ActionBind15:
		return func() { coordinator.AddBindTime(15) }, nil
	case model.ActionClearDevice:
		return coordinator.ClearDevice, nil
	case model.ActionResetBreath:
		return coordinator.resetHandler(action, model.TimerBreath), nil
	case model.ActionResetDive:
		return coordinator.resetHandler(action, model.TimerDive), nil
	case model.ActionResetLaser:
		return coordinator.resetHandler(action, model.TimerLaser), nil
	case model.ActionResetArrows:
		return coordinator.resetHandler(action, model.TimerArrow), nil
	case model.ActionResetBombs:
		return coordinator.resetHandler(action, model.TimerBomb), nil
	case model.ActionResetFMA:
		return coordinator.resetHandler(action, model.TimerFMA), nil
	case model.ActionAddDevice:
		return coordinator.AddDevice, nil
	case model.ActionCloseOverlay:
		return coordinator.Close, nil
	}
	return nil, fmt.Errorf("handler for %s: %w", action, model.ErrUnknownAction)
}

func (coordinator *Coordinator) resetHandler(action model.Action, name model.TimerName) func() {
	return coordinator.report(action, func() error { return coordinator.ResetTimer(name) })
}

func (coordinator *Coordinator) report(action model.Action, fn func() error) func() {
	return func() {
		if err := fn(); err != nil {
			coordinator.logger.WithError(err).Errorf("action %s failed", action)
		}
	}
}
