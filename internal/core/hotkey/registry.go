// Package hotkey maps finalized chords to action callbacks.
package hotkey

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"phasewatch/internal/core/chord"
	"phasewatch/internal/logs"

	"github.com/sirupsen/logrus"
)

var (
	// ErrEmptyChord indicates a chord string without a key.
	ErrEmptyChord = errors.New("empty chord")
	// ErrDuplicateHotkey indicates two actions configured with the same chord.
	ErrDuplicateHotkey = errors.New("duplicate hotkey")
)

// Normalize returns the canonical form of a chord string: lower-case,
// without spaces, modifier aliases collapsed and duplicates dropped.
// Modifier order is preserved.
func Normalize(value string) (string, error) {
	parts := strings.Split(value, "+")
	var modifiers []string
	key := ""
	for index, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			if index == len(parts)-1 && index > 0 {
				// "ctrl++" binds the plus key.
				key = "+"
			}
			continue
		}
		name = chord.NormalizeKey(name)
		if chord.IsModifier(name) {
			if !containsString(modifiers, name) {
				modifiers = append(modifiers, name)
			}
			continue
		}
		key = name
	}
	if key == "" {
		return "", fmt.Errorf("normalize %q: %w", value, ErrEmptyChord)
	}
	return chord.Join(modifiers, key), nil
}

var modifierRank = map[string]int{
	chord.ModCtrl:  0,
	chord.ModShift: 1,
	chord.ModAlt:   2,
	chord.ModSuper: 3,
}

// MatchKey returns the order-independent form of a chord: the normalized
// chord with modifiers in ctrl, shift, alt, super order. Two chords match
// when their keys are equal.
func MatchKey(value string) (string, error) {
	normalized, err := Normalize(value)
	if err != nil {
		return "", err
	}
	parts := strings.Split(normalized, "+")
	key := parts[len(parts)-1]
	modifiers := parts[:len(parts)-1]
	if key == "" {
		key = "+"
		modifiers = parts[:len(parts)-2]
	}
	sort.SliceStable(modifiers, func(i, j int) bool {
		return modifierRank[modifiers[i]] < modifierRank[modifiers[j]]
	})
	return chord.Join(modifiers, key), nil
}

func containsString(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}

// Registry holds one callback per chord, matched by MatchKey.
type Registry struct {
	mu       sync.RWMutex
	bindings map[string]func()
	logger   *logrus.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *logrus.Logger) *Registry {
	if logger == nil {
		logger = logs.Discard()
	}
	return &Registry{bindings: make(map[string]func()), logger: logger}
}

// Bind maps chord to fn. A later bind of the same chord replaces the earlier one.
func (registry *Registry) Bind(value string, fn func()) error {
	normalized, err := MatchKey(value)
	if err != nil {
		return fmt.Errorf("bind: %w", err)
	}
	if fn == nil {
		return fmt.Errorf("bind %s: nil callback", normalized)
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, exists := registry.bindings[normalized]; exists {
		registry.logger.Debugf("rebinding %s", normalized)
	}
	registry.bindings[normalized] = fn
	return nil
}

// Unbind removes a single chord. It reports whether a binding existed.
func (registry *Registry) Unbind(value string) bool {
	normalized, err := MatchKey(value)
	if err != nil {
		return false
	}
	registry.mu.Lock()
	defer registry.mu.Unlock()
	_, ok := registry.bindings[normalized]
	delete(registry.bindings, normalized)
	return ok
}

// UnbindAll removes every binding.
func (registry *Registry) UnbindAll() {
	registry.mu.Lock()
	registry.bindings = make(map[string]func())
	registry.mu.Unlock()
}

// Dispatch invokes the callback bound to chord synchronously, whatever the
// order of its modifiers. Unknown chords are ignored and reported as false.
func (registry *Registry) Dispatch(value string) bool {
	normalized, err := MatchKey(value)
	if err != nil {
		return false
	}
	registry.mu.RLock()
	fn, ok := registry.bindings[normalized]
	registry.mu.RUnlock()
	if !ok {
		return false
	}
	registry.logger.Debugf("dispatch %s", normalized)
	fn()
	return true
}

// Chords returns the match keys of the bound chords sorted alphabetically.
func (registry *Registry) Chords() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	chords := make([]string, 0, len(registry.bindings))
	for value := range registry.bindings {
		chords = append(chords, value)
	}
	sort.Strings(chords)
	return chords
}
