package model

import (
	"errors"
	"fmt"
)

// Config contains runtime settings for an encounter session.
type Config struct {
	Timers  map[TimerName]TimerConfig
	Hotkeys map[Action]string

	// CheckBonus is the extra time in seconds a phase check grants.
	CheckBonus     int
	DeviceCapacity int
	WarningSeconds int
	StartTimers    []TimerName
	CheckTimers    []TimerName

	LogLevel string
	Language string
	Sound    bool
	Opacity  float64
}

// DefaultConfig returns default settings for an encounter.
func DefaultConfig() Config {
	return Config{
		Timers: DefaultTimers(),
		Hotkeys: map[Action]string{
			ActionCloseOverlay: "esc",
		},
		CheckBonus:     50,
		DeviceCapacity: 4,
		WarningSeconds: 60,
		StartTimers:    []TimerName{TimerDevice, TimerFMA, TimerBomb},
		CheckTimers:    []TimerName{TimerDevice, TimerFMA},
		LogLevel:       "info",
		Sound:          true,
		Opacity:        0.85,
	}
}

// Validate checks the config for caller contract violations.
func (config Config) Validate() error {
	for _, name := range TimerNames {
		timerConfig, ok := config.Timers[name]
		if !ok {
			return fmt.Errorf("timer %s: missing configuration", name)
		}
		if err := timerConfig.Validate(); err != nil {
			return fmt.Errorf("timer %s: %w", name, err)
		}
	}
	for name := range config.Timers {
		if _, err := ParseTimerName(string(name)); err != nil {
			return err
		}
	}
	if config.DeviceCapacity < 1 {
		return fmt.Errorf("device capacity %d must be at least 1", config.DeviceCapacity)
	}
	if config.WarningSeconds < 0 {
		return fmt.Errorf("warning seconds %d is negative", config.WarningSeconds)
	}
	if config.CheckBonus < 0 {
		return errors.New("check bonus is negative")
	}
	for _, list := range [][]TimerName{config.StartTimers, config.CheckTimers} {
		for _, name := range list {
			if _, ok := config.Timers[name]; !ok {
				return fmt.Errorf("timer list entry %q: %w", name, ErrUnknownTimer)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the config.
func (config Config) Clone() Config {
	clone := config
	clone.Timers = make(map[TimerName]TimerConfig, len(config.Timers))
	for name, timerConfig := range config.Timers {
		timerConfig.InitialValues = append([]int(nil), timerConfig.InitialValues...)
		clone.Timers[name] = timerConfig
	}
	clone.Hotkeys = make(map[Action]string, len(config.Hotkeys))
	for action, chord := range config.Hotkeys {
		clone.Hotkeys[action] = chord
	}
	clone.StartTimers = append([]TimerName(nil), config.StartTimers...)
	clone.CheckTimers = append([]TimerName(nil), config.CheckTimers...)
	return clone
}
