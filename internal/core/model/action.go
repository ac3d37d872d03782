package model

import (
	"errors"
	"fmt"
)

// ErrUnknownAction indicates an action outside the closed action table.
var ErrUnknownAction = errors.New("unknown action")

// Action is a user-triggerable overlay operation.
type Action int

const (
	ActionStartTimers Action = iota
	ActionBeginCheck
	ActionFailCheck
	ActionBind10
	ActionBind15
	ActionClearDevice
	ActionResetBreath
	ActionResetDive
	ActionResetLaser
	ActionResetArrows
	ActionResetBombs
	ActionResetFMA
	ActionAddDevice
	ActionCloseOverlay
)

// Actions lists every action in settings order.
var Actions = []Action{
	ActionStartTimers,
	ActionBeginCheck,
	ActionFailCheck,
	ActionBind10,
	ActionBind15,
	ActionClearDevice,
	ActionResetBreath,
	ActionResetDive,
	ActionResetLaser,
	ActionResetArrows,
	ActionResetBombs,
	ActionResetFMA,
	ActionAddDevice,
	ActionCloseOverlay,
}

var actionKeys = map[Action]string{
	ActionStartTimers:  "start_timers",
	ActionBeginCheck:   "begin_check",
	ActionFailCheck:    "fail_check",
	ActionBind10:       "bind_10s",
	ActionBind15:       "bind_15s",
	ActionClearDevice:  "clear_device",
	ActionResetBreath:  "reset_breath",
	ActionResetDive:    "reset_dive",
	ActionResetLaser:   "reset_laser",
	ActionResetArrows:  "reset_arrows",
	ActionResetBombs:   "reset_bombs",
	ActionResetFMA:     "reset_fma",
	ActionAddDevice:    "add_device",
	ActionCloseOverlay: "close_overlay",
}

var actionLabels = map[Action]string{
	ActionStartTimers:  "Start Timers",
	ActionBeginCheck:   "Begin Check",
	ActionFailCheck:    "Fail Check",
	ActionBind10:       "10s Bind",
	ActionBind15:       "15s Bind",
	ActionClearDevice:  "Clear Device",
	ActionResetBreath:  "Reset Breath",
	ActionResetDive:    "Reset Dive",
	ActionResetLaser:   "Reset Laser",
	ActionResetArrows:  "Reset Arrows",
	ActionResetBombs:   "Reset Bombs",
	ActionResetFMA:     "Reset FMA",
	ActionAddDevice:    "Add Device",
	ActionCloseOverlay: "Close Overlay",
}

// Key returns the config key of the action.
func (action Action) Key() string {
	if key, ok := actionKeys[action]; ok {
		return key
	}
	return fmt.Sprintf("action(%d)", int(action))
}

// Label returns the human readable name of the action.
func (action Action) Label() string {
	if label, ok := actionLabels[action]; ok {
		return label
	}
	return action.Key()
}

func (action Action) String() string {
	return action.Key()
}

// ParseAction resolves a config key to an Action.
func ParseAction(key string) (Action, error) {
	for action, candidate := range actionKeys {
		if candidate == key {
			return action, nil
		}
	}
	return 0, fmt.Errorf("parse action %q: %w", key, ErrUnknownAction)
}
