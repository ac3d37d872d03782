package hotkey

import (
	"fmt"
	"strings"

	"phasewatch/internal/core/model"
)

// CloseFallback is the chord of close_overlay when none is configured.
const CloseFallback = "esc"

// Plan normalizes the chord of every action and rejects chords that match
// another action's, whatever their modifier order. Empty chords are left
// out, except close_overlay which falls back to CloseFallback.
func Plan(hotkeys map[model.Action]string) (map[model.Action]string, error) {
	owners := make(map[string]model.Action)
	plan := make(map[model.Action]string, len(hotkeys))
	for _, action := range model.Actions {
		value := strings.TrimSpace(hotkeys[action])
		if value == "" && action == model.ActionCloseOverlay {
			value = CloseFallback
		}
		if value == "" {
			continue
		}
		normalized, err := Normalize(value)
		if err != nil {
			return nil, fmt.Errorf("hotkey for %s: %w", action, err)
		}
		key, err := MatchKey(normalized)
		if err != nil {
			return nil, fmt.Errorf("hotkey for %s: %w", action, err)
		}
		if owner, exists := owners[key]; exists {
			return nil, fmt.Errorf("%s used by %s and %s: %w", normalized, owner, action, ErrDuplicateHotkey)
		}
		owners[key] = action
		plan[action] = normalized
	}
	return plan, nil
}
