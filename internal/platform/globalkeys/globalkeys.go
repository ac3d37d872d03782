// Package globalkeys registers chords as OS-level hotkeys so they fire while
// the game window has focus.
package globalkeys

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"phasewatch/internal/core/chord"
	"phasewatch/internal/logs"

	"github.com/sirupsen/logrus"
	"golang.design/x/hotkey"
)

// ErrUnsupportedKey indicates a chord the OS hotkey layer cannot express.
var ErrUnsupportedKey = errors.New("unsupported key")

var keyMap = map[string]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3, "f4": hotkey.KeyF4,
	"f5": hotkey.KeyF5, "f6": hotkey.KeyF6, "f7": hotkey.KeyF7, "f8": hotkey.KeyF8,
	"f9": hotkey.KeyF9, "f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,
	"space":  hotkey.KeySpace,
	"enter":  hotkey.KeyReturn,
	"esc":    hotkey.KeyEscape,
	"tab":    hotkey.KeyTab,
	"delete": hotkey.KeyDelete,
	"left":   hotkey.KeyLeft,
	"right":  hotkey.KeyRight,
	"up":     hotkey.KeyUp,
	"down":   hotkey.KeyDown,
}

// Parse converts a normalized chord into OS hotkey parameters.
func Parse(value string) ([]hotkey.Modifier, hotkey.Key, error) {
	parts := strings.Split(value, "+")
	keyName := parts[len(parts)-1]
	key, ok := keyMap[keyName]
	if !ok {
		return nil, 0, fmt.Errorf("parse %q: key %q: %w", value, keyName, ErrUnsupportedKey)
	}

	modifiers := make([]hotkey.Modifier, 0, len(parts)-1)
	for _, name := range parts[:len(parts)-1] {
		modifier, ok := modifierMap[chord.NormalizeKey(name)]
		if !ok {
			return nil, 0, fmt.Errorf("parse %q: modifier %q: %w", value, name, ErrUnsupportedKey)
		}
		modifiers = append(modifiers, modifier)
	}
	return modifiers, key, nil
}

type registration struct {
	hotkey *hotkey.Hotkey
	stop   chan struct{}
}

// Manager owns the registered OS hotkeys.
type Manager struct {
	mu            sync.Mutex
	registrations map[string]*registration
	logger        *logrus.Logger
}

// NewManager creates an empty manager.
func NewManager(logger *logrus.Logger) *Manager {
	if logger == nil {
		logger = logs.Discard()
	}
	return &Manager{registrations: make(map[string]*registration), logger: logger}
}

// Register grabs value system-wide. Every key-down calls dispatch with the
// chord from a background goroutine.
func (manager *Manager) Register(value string, dispatch func(string)) error {
	modifiers, key, err := Parse(value)
	if err != nil {
		return err
	}

	manager.mu.Lock()
	defer manager.mu.Unlock()
	if _, exists := manager.registrations[value]; exists {
		return nil
	}

	hk := hotkey.New(modifiers, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("register %s: %w", value, err)
	}
	current := &registration{hotkey: hk, stop: make(chan struct{})}
	manager.registrations[value] = current

	go func() {
		for {
			select {
			case <-current.stop:
				return
			case <-hk.Keydown():
				dispatch(value)
			}
		}
	}()
	manager.logger.Debugf("global hotkey %s registered", value)
	return nil
}

// RegisterAll registers every chord and logs the ones the OS refuses.
// It returns the chords that were registered.
func (manager *Manager) RegisterAll(values []string, dispatch func(string)) []string {
	registered := make([]string, 0, len(values))
	for _, value := range values {
		if err := manager.Register(value, dispatch); err != nil {
			manager.logger.WithError(err).Warnf("global hotkey %s unavailable", value)
			continue
		}
		registered = append(registered, value)
	}
	return registered
}

// UnregisterAll releases every hotkey.
func (manager *Manager) UnregisterAll() {
	manager.mu.Lock()
	registrations := manager.registrations
	manager.registrations = make(map[string]*registration)
	manager.mu.Unlock()

	for value, current := range registrations {
		close(current.stop)
		if err := current.hotkey.Unregister(); err != nil {
			manager.logger.WithError(err).Warnf("unregister %s", value)
		}
	}
}
