package overlay

import (
	"fmt"
	"image/color"
	"strconv"

	"phasewatch/internal/core/countdown"
)

var (
	normalColor   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	criticalColor = color.NRGBA{R: 255, G: 90, B: 79, A: 255}
	idleColor     = color.NRGBA{R: 138, G: 143, B: 153, A: 255}
)

// FormatReading returns the label text of a timer.
func FormatReading(reading countdown.Reading) string {
	if !reading.Armed {
		return "--"
	}
	return strconv.Itoa(reading.Value)
}

// ReadingColor returns the label color of a timer.
func ReadingColor(reading countdown.Reading) color.Color {
	switch {
	case !reading.Armed:
		return idleColor
	case reading.Critical:
		return criticalColor
	default:
		return normalColor
	}
}

// PhaseLabel names the encounter stage shown above the timers.
func PhaseLabel(phase int) string {
	return fmt.Sprintf("2-%d", phase+1)
}

// OpacityToAlpha converts a 0..1 opacity into an alpha byte.
func OpacityToAlpha(opacity float64) uint8 {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return uint8(opacity * 255)
}
