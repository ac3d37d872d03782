package animation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	frames []bool
}

func (rec *recorder) apply(lit bool) {
	rec.mu.Lock()
	rec.frames = append(rec.frames, lit)
	rec.mu.Unlock()
}

func (rec *recorder) snapshot() []bool {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]bool(nil), rec.frames...)
}

func TestEngineAlternatesAndEndsUnlit(t *testing.T) {
	rec := &recorder{}
	engine := New(Config{On: 5 * time.Millisecond, Off: 5 * time.Millisecond}, rec.apply)

	engine.Start(context.Background())
	assert.True(t, engine.Running())
	time.Sleep(40 * time.Millisecond)
	engine.Stop()
	assert.False(t, engine.Running())

	frames := rec.snapshot()
	require.GreaterOrEqual(t, len(frames), 3)
	assert.True(t, frames[0])
	for index := 1; index < len(frames)-1; index++ {
		assert.NotEqual(t, frames[index-1], frames[index])
	}
	assert.False(t, frames[len(frames)-1])

	count := len(rec.snapshot())
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, count, len(rec.snapshot()))
}

func TestEngineStopsWithContext(t *testing.T) {
	rec := &recorder{}
	engine := New(Config{On: time.Hour, Off: time.Hour}, rec.apply)

	ctx, cancel := context.WithCancel(context.Background())
	engine.Start(ctx)
	cancel()
	engine.Stop()

	assert.Equal(t, []bool{true, false}, rec.snapshot())
}

func TestStopWithoutStartIsNoop(t *testing.T) {
	rec := &recorder{}
	New(Config{}, rec.apply).Stop()
	assert.Empty(t, rec.snapshot())
}
