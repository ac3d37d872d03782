// Package animation drives the overlay's attention flashes.
package animation

import (
	"context"
	"sync"
	"time"
)

// Config contains flash timing values.
type Config struct {
	On  time.Duration
	Off time.Duration
}

// DefaultConfig returns a two hertz flash.
func DefaultConfig() Config {
	return Config{On: 300 * time.Millisecond, Off: 200 * time.Millisecond}
}

// Engine alternates a frame between lit and unlit until stopped.
type Engine struct {
	mu     sync.Mutex
	config Config
	apply  func(lit bool)
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates an idle engine. apply is called from the engine goroutine.
func New(config Config, apply func(lit bool)) *Engine {
	if config.On <= 0 || config.Off <= 0 {
		config = DefaultConfig()
	}
	return &Engine{config: config, apply: apply}
}

// Start begins flashing, replacing any running flash.
func (engine *Engine) Start(ctx context.Context) {
	engine.Stop()

	engine.mu.Lock()
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	engine.cancel = cancel
	engine.done = done
	engine.mu.Unlock()

	go func() {
		defer close(done)
		for {
			engine.apply(true)
			if !sleepWithContext(runCtx, engine.config.On) {
				return
			}
			engine.apply(false)
			if !sleepWithContext(runCtx, engine.config.Off) {
				return
			}
		}
	}()
}

// Stop ends the flash and leaves the frame unlit.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	cancel := engine.cancel
	done := engine.done
	engine.cancel = nil
	engine.done = nil
	engine.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	engine.apply(false)
}

// Running reports whether a flash is active.
func (engine *Engine) Running() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.cancel != nil
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
