package keys

import (
	"testing"

	"phasewatch/internal/core/chord"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventMarksModifiers(t *testing.T) {
	assert.True(t, Event(desktop.KeyControlLeft, true).Modifier)
	assert.True(t, Event(desktop.KeyShiftRight, false).Modifier)
	assert.True(t, Event(desktop.KeyAltLeft, true).Modifier)
	assert.True(t, Event(desktop.KeySuperLeft, true).Modifier)
	assert.False(t, Event(fyne.KeyP, true).Modifier)
}

func TestFyneKeysBuildChords(t *testing.T) {
	var builder chord.Builder
	builder.Feed(Event(desktop.KeyControlLeft, true))
	builder.Feed(Event(desktop.KeyShiftLeft, true))
	value, ok := builder.Feed(Event(fyne.KeyP, true))
	require.True(t, ok)
	assert.Equal(t, "ctrl+shift+p", value)

	builder.Reset()
	value, ok = builder.Feed(Event(fyne.KeyEscape, true))
	require.True(t, ok)
	assert.Equal(t, "esc", value)

	value, ok = builder.Feed(Event(fyne.KeyF5, true))
	require.True(t, ok)
	assert.Equal(t, "f5", value)
}
