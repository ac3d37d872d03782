// Package audio plays the synthesized alert tone.
package audio

import (
	"fmt"
	"sync"
	"time"

	"phasewatch/internal/logs"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"
)

const (
	sampleRate = beep.SampleRate(44100)
	toneHz     = 880
	pulse      = 120 * time.Millisecond
	gap        = 80 * time.Millisecond
	pulses     = 2
)

// Tone renders the alert pattern into a buffer: pulses of a sine tone
// separated by silence.
func Tone(rate beep.SampleRate, freq float64, pulseLength, gapLength time.Duration, count int) (*beep.Buffer, error) {
	buffer := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	for index := 0; index < count; index++ {
		sine, err := generators.SineTone(rate, freq)
		if err != nil {
			return nil, fmt.Errorf("build alert tone: %w", err)
		}
		buffer.Append(beep.Take(rate.N(pulseLength), sine))
		if index < count-1 {
			buffer.Append(beep.Silence(rate.N(gapLength)))
		}
	}
	return buffer, nil
}

// Player plays the alert through the system speaker.
type Player struct {
	mu     sync.Mutex
	buffer *beep.Buffer
	ready  bool
	logger *logrus.Logger
}

// NewPlayer prepares the alert tone. The speaker is opened by Init.
func NewPlayer(logger *logrus.Logger) (*Player, error) {
	if logger == nil {
		logger = logs.Discard()
	}
	buffer, err := Tone(sampleRate, toneHz, pulse, gap, pulses)
	if err != nil {
		return nil, err
	}
	return &Player{buffer: buffer, logger: logger}, nil
}

// Init opens the speaker. On failure the player stays silent.
func (player *Player) Init() error {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	player.ready = true
	return nil
}

// Alert plays the tone without blocking.
func (player *Player) Alert() {
	player.mu.Lock()
	defer player.mu.Unlock()
	if !player.ready {
		player.logger.Debug("alert skipped: speaker not initialised")
		return
	}
	speaker.Play(player.buffer.Streamer(0, player.buffer.Len()))
}

// Duration returns the length of the alert.
func (player *Player) Duration() time.Duration {
	return sampleRate.D(player.buffer.Len())
}
