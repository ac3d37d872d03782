//go:build linux

package globalkeys

import (
	"phasewatch/internal/core/chord"

	"golang.design/x/hotkey"
)

// Alt and Super are Mod1 and Mod4 on X11.
var modifierMap = map[string]hotkey.Modifier{
	chord.ModCtrl:  hotkey.ModCtrl,
	chord.ModShift: hotkey.ModShift,
	chord.ModAlt:   hotkey.Mod1,
	chord.ModSuper: hotkey.Mod4,
}
