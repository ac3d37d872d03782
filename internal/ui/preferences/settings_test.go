package preferences

import (
	"testing"

	"phasewatch/internal/core/hotkey"
	"phasewatch/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAndParseValues(t *testing.T) {
	assert.Equal(t, "60, 45, 20, 20", FormatValues([]int{60, 45, 20, 20}))

	values, err := ParseValues(" 60,45 , 20,")
	require.NoError(t, err)
	assert.Equal(t, []int{60, 45, 20}, values)

	_, err = ParseValues("60, -1")
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = ParseValues(" , ")
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = ParseValues("abc")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestFormForTimer(t *testing.T) {
	form := FormForTimer(model.TimerConfig{InitialValues: []int{60, 45}, RedThreshold: 5, AutoReset: true})
	assert.Equal(t, TimerForm{Initial: "60, 45", Red: "5", AutoReset: true}, form)
}

func TestApplyUpdatesTimersAndHotkeys(t *testing.T) {
	config := model.DefaultConfig()
	updated, err := Apply(config, map[model.TimerName]TimerForm{
		model.TimerDevice: {Initial: "55", Red: "8", AutoReset: false},
	}, map[model.Action]string{
		model.ActionStartTimers: "Control + S",
		model.ActionBind10:      "f2",
	})
	require.NoError(t, err)

	assert.Equal(t, []int{55}, updated.Timers[model.TimerDevice].InitialValues)
	assert.Equal(t, 8, updated.Timers[model.TimerDevice].RedThreshold)
	assert.False(t, updated.Timers[model.TimerDevice].AutoReset)
	assert.Equal(t, "ctrl+s", updated.Hotkeys[model.ActionStartTimers])
	assert.Equal(t, "f2", updated.Hotkeys[model.ActionBind10])
	assert.Equal(t, "esc", updated.Hotkeys[model.ActionCloseOverlay])

	// The input config is left untouched.
	assert.Equal(t, []int{60}, config.Timers[model.TimerDevice].InitialValues)
	assert.NotContains(t, config.Hotkeys, model.ActionStartTimers)
}

func TestApplyClearsHotkeys(t *testing.T) {
	config := model.DefaultConfig()
	config.Hotkeys[model.ActionAddDevice] = "f9"

	updated, err := Apply(config, nil, map[model.Action]string{
		model.ActionAddDevice:    "",
		model.ActionCloseOverlay: " ",
	})
	require.NoError(t, err)
	assert.NotContains(t, updated.Hotkeys, model.ActionAddDevice)
	assert.Equal(t, "esc", updated.Hotkeys[model.ActionCloseOverlay])
}

func TestApplyRejectsBadInput(t *testing.T) {
	config := model.DefaultConfig()

	_, err := Apply(config, map[model.TimerName]TimerForm{
		model.TimerFMA: {Initial: "x", Red: "1"},
	}, nil)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = Apply(config, map[model.TimerName]TimerForm{
		model.TimerFMA: {Initial: "150", Red: "-3"},
	}, nil)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = Apply(config, map[model.TimerName]TimerForm{
		"boss": {Initial: "1", Red: "1"},
	}, nil)
	assert.ErrorIs(t, err, model.ErrUnknownTimer)

	_, err = Apply(config, nil, map[model.Action]string{
		model.ActionBind10: "esc",
	})
	assert.ErrorIs(t, err, hotkey.ErrDuplicateHotkey)

	_, err = Apply(config, nil, map[model.Action]string{
		model.ActionAddDevice:   "ctrl+shift+p",
		model.ActionClearDevice: "shift+ctrl+p",
	})
	assert.ErrorIs(t, err, hotkey.ErrDuplicateHotkey)

	_, err = Apply(config, nil, map[model.Action]string{
		model.ActionBind15: "ctrl+shift",
	})
	assert.ErrorIs(t, err, hotkey.ErrEmptyChord)
}
