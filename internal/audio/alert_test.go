package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	buffer, err := Tone(rate, 440, 100*time.Millisecond, 50*time.Millisecond, 3)
	require.NoError(t, err)
	assert.Equal(t, 3*800+2*400, buffer.Len())
}

func TestToneRejectsAliasedFrequency(t *testing.T) {
	_, err := Tone(beep.SampleRate(8000), 6000, time.Millisecond, time.Millisecond, 1)
	assert.Error(t, err)
}

func TestAlertWithoutSpeakerIsSilent(t *testing.T) {
	player, err := NewPlayer(nil)
	require.NoError(t, err)
	player.Alert()
	assert.Equal(t, 2*pulse+gap, player.Duration().Round(time.Millisecond))
}
