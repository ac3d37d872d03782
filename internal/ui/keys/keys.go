// Package keys feeds Fyne canvas key events into a chord source.
package keys

import (
	"phasewatch/internal/core/chord"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Event converts a Fyne key transition into a raw chord event.
func Event(name fyne.KeyName, down bool) chord.KeyEvent {
	value := string(name)
	return chord.KeyEvent{Name: value, Down: down, Modifier: chord.IsModifier(value)}
}

// Attach publishes every key down and up of canvas into sink. It reports
// false when the canvas does not deliver raw key events.
func Attach(canvas fyne.Canvas, sink *chord.Broadcaster) bool {
	desktopCanvas, ok := canvas.(desktop.Canvas)
	if !ok {
		return false
	}
	desktopCanvas.SetOnKeyDown(func(ev *fyne.KeyEvent) {
		sink.Publish(Event(ev.Name, true))
	})
	desktopCanvas.SetOnKeyUp(func(ev *fyne.KeyEvent) {
		sink.Publish(Event(ev.Name, false))
	})
	return true
}
