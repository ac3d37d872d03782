// Package chord assembles modifier+key combinations from raw key events.
package chord

import "strings"

// KeyEvent is a single raw key transition.
type KeyEvent struct {
	Name     string
	Down     bool
	Modifier bool
}

// Source delivers raw key events to subscribed handlers. Handlers may be
// invoked from any goroutine but never from inside Subscribe itself.
type Source interface {
	Subscribe(handler func(KeyEvent)) (unsubscribe func())
}

const (
	ModCtrl  = "ctrl"
	ModShift = "shift"
	ModAlt   = "alt"
	ModSuper = "super"
)

var modifierAliases = map[string]string{
	"ctrl":          ModCtrl,
	"control":       ModCtrl,
	"lctrl":         ModCtrl,
	"rctrl":         ModCtrl,
	"left ctrl":     ModCtrl,
	"right ctrl":    ModCtrl,
	"leftcontrol":   ModCtrl,
	"rightcontrol":  ModCtrl,
	"control_l":     ModCtrl,
	"control_r":     ModCtrl,
	"shift":         ModShift,
	"lshift":        ModShift,
	"rshift":        ModShift,
	"left shift":    ModShift,
	"right shift":   ModShift,
	"leftshift":     ModShift,
	"rightshift":    ModShift,
	"shift_l":       ModShift,
	"shift_r":       ModShift,
	"alt":           ModAlt,
	"lalt":          ModAlt,
	"ralt":          ModAlt,
	"left alt":      ModAlt,
	"right alt":     ModAlt,
	"leftalt":       ModAlt,
	"rightalt":      ModAlt,
	"alt_l":         ModAlt,
	"alt_r":         ModAlt,
	"alt gr":        ModAlt,
	"option":        ModAlt,
	"super":         ModSuper,
	"leftsuper":     ModSuper,
	"rightsuper":    ModSuper,
	"super_l":       ModSuper,
	"super_r":       ModSuper,
	"windows":       ModSuper,
	"left windows":  ModSuper,
	"right windows": ModSuper,
	"win":           ModSuper,
	"cmd":           ModSuper,
	"command":       ModSuper,
	"meta":          ModSuper,
}

var keyAliases = map[string]string{
	"escape":   "esc",
	"return":   "enter",
	"spacebar": "space",
	"del":      "delete",
	"pgup":     "pageup",
	"pgdn":     "pagedown",
}

// NormalizeKey returns the canonical lower-case name of a key.
func NormalizeKey(name string) string {
	if name == " " {
		return "space"
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	if modifier, ok := modifierAliases[normalized]; ok {
		return modifier
	}
	if alias, ok := keyAliases[normalized]; ok {
		return alias
	}
	return normalized
}

// IsModifier reports whether name is a modifier key.
func IsModifier(name string) bool {
	switch NormalizeKey(name) {
	case ModCtrl, ModShift, ModAlt, ModSuper:
		return true
	}
	return false
}

// Join builds a chord string from modifiers in press order and a final key.
func Join(modifiers []string, key string) string {
	if len(modifiers) == 0 {
		return key
	}
	return strings.Join(modifiers, "+") + "+" + key
}

// Builder is the chord state machine: it tracks held modifiers and yields a
// chord on every non-modifier key-down.
type Builder struct {
	modifiers []string
}

// Feed applies ev and returns the chord it completes, if any.
func (builder *Builder) Feed(ev KeyEvent) (string, bool) {
	name := NormalizeKey(ev.Name)
	if name == "" {
		return "", false
	}

	if ev.Modifier || IsModifier(name) {
		if ev.Down {
			builder.press(name)
		} else {
			builder.release(name)
		}
		return "", false
	}

	if !ev.Down {
		return "", false
	}
	return Join(builder.modifiers, name), true
}

// Held returns the modifiers currently pressed, in press order.
func (builder *Builder) Held() []string {
	return append([]string(nil), builder.modifiers...)
}

// Reset forgets every held modifier.
func (builder *Builder) Reset() {
	builder.modifiers = nil
}

func (builder *Builder) press(name string) {
	for _, held := range builder.modifiers {
		if held == name {
			return
		}
	}
	builder.modifiers = append(builder.modifiers, name)
}

func (builder *Builder) release(name string) {
	for index, held := range builder.modifiers {
		if held == name {
			builder.modifiers = append(builder.modifiers[:index], builder.modifiers[index+1:]...)
			return
		}
	}
}
