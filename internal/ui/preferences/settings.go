package preferences

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"phasewatch/internal/core/hotkey"
	"phasewatch/internal/core/model"
)

// ErrInvalidValue indicates a settings field that is not a non-negative integer.
var ErrInvalidValue = errors.New("invalid value")

// TimerForm holds the editable text of one timer row.
type TimerForm struct {
	Initial   string
	Red       string
	AutoReset bool
}

// FormForTimer renders a timer config into form text.
func FormForTimer(config model.TimerConfig) TimerForm {
	return TimerForm{
		Initial:   FormatValues(config.InitialValues),
		Red:       strconv.Itoa(config.RedThreshold),
		AutoReset: config.AutoReset,
	}
}

// FormatValues joins per-phase seconds with commas.
func FormatValues(values []int) string {
	parts := make([]string, len(values))
	for index, value := range values {
		parts[index] = strconv.Itoa(value)
	}
	return strings.Join(parts, ", ")
}

// ParseValues reads a comma separated list of seconds.
func ParseValues(text string) ([]int, error) {
	var values []int
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, ok := parseNonNegativeInt(part)
		if !ok {
			return nil, fmt.Errorf("%q: %w", part, ErrInvalidValue)
		}
		values = append(values, value)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%q: %w", text, ErrInvalidValue)
	}
	return values, nil
}

// Apply returns config with the timer forms and hotkeys applied. An empty
// hotkey clears that action's binding, except close_overlay which falls
// back to esc. Actions missing from hotkeys keep their current chord.
func Apply(config model.Config, forms map[model.TimerName]TimerForm, hotkeys map[model.Action]string) (model.Config, error) {
	updated := config.Clone()

	for name, form := range forms {
		timerConfig, ok := updated.Timers[name]
		if !ok {
			return config, fmt.Errorf("timer %s: %w", name, model.ErrUnknownTimer)
		}
		values, err := ParseValues(form.Initial)
		if err != nil {
			return config, fmt.Errorf("timer %s initial: %w", name, err)
		}
		red, ok := parseNonNegativeInt(strings.TrimSpace(form.Red))
		if !ok {
			return config, fmt.Errorf("timer %s red %q: %w", name, form.Red, ErrInvalidValue)
		}
		timerConfig.InitialValues = values
		timerConfig.RedThreshold = red
		timerConfig.AutoReset = form.AutoReset
		updated.Timers[name] = timerConfig
	}

	merged := make(map[model.Action]string, len(model.Actions))
	for action, value := range updated.Hotkeys {
		merged[action] = value
	}
	for action, value := range hotkeys {
		merged[action] = value
	}
	plan, err := hotkey.Plan(merged)
	if err != nil {
		return config, err
	}
	updated.Hotkeys = plan

	if err := updated.Validate(); err != nil {
		return config, err
	}
	return updated, nil
}

func parseNonNegativeInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, false
	}
	return parsed, true
}
