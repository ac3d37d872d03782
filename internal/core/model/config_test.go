package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	config := DefaultConfig()
	require.NoError(t, config.Validate())
	assert.Equal(t, []int{60, 45, 20, 20}, config.Timers[TimerBreath].InitialValues)
	assert.True(t, config.Timers[TimerBreath].PhaseIndexed)
	assert.False(t, config.Timers[TimerFMA].AutoReset)
	assert.True(t, config.Timers[TimerDevice].AutoReset)
}

func TestValidateRejectsBrokenTimers(t *testing.T) {
	config := DefaultConfig()
	config.Timers[TimerLaser] = TimerConfig{RedThreshold: 5}
	assert.Error(t, config.Validate())

	config = DefaultConfig()
	delete(config.Timers, TimerDive)
	assert.Error(t, config.Validate())

	config = DefaultConfig()
	config.StartTimers = append(config.StartTimers, TimerName("kalos"))
	err := config.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTimer))

	config = DefaultConfig()
	config.DeviceCapacity = 0
	assert.Error(t, config.Validate())
}

func TestCloneIsDeep(t *testing.T) {
	config := DefaultConfig()
	clone := config.Clone()
	clone.Timers[TimerBreath].InitialValues[0] = 1
	clone.Hotkeys[ActionBeginCheck] = "f1"

	assert.Equal(t, 60, config.Timers[TimerBreath].InitialValues[0])
	_, ok := config.Hotkeys[ActionBeginCheck]
	assert.False(t, ok)
}

func TestParseAction(t *testing.T) {
	for _, action := range Actions {
		parsed, err := ParseAction(action.Key())
		require.NoError(t, err)
		assert.Equal(t, action, parsed)
		assert.NotEmpty(t, action.Label())
	}

	_, err := ParseAction("reset_everything")
	assert.True(t, errors.Is(err, ErrUnknownAction))
}

func TestParseTimerName(t *testing.T) {
	name, err := ParseTimerName("fma")
	require.NoError(t, err)
	assert.Equal(t, TimerFMA, name)

	_, err = ParseTimerName("FMA")
	assert.True(t, errors.Is(err, ErrUnknownTimer))
}
