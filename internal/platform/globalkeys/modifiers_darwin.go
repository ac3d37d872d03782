//go:build darwin

package globalkeys

import (
	"phasewatch/internal/core/chord"

	"golang.design/x/hotkey"
)

var modifierMap = map[string]hotkey.Modifier{
	chord.ModCtrl:  hotkey.ModCtrl,
	chord.ModShift: hotkey.ModShift,
	chord.ModAlt:   hotkey.ModOption,
	chord.ModSuper: hotkey.ModCmd,
}
