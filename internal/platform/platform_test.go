package platform

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigPathOverride(t *testing.T) {
	t.Setenv(ConfigPathEnv, "/tmp/custom.yaml")
	path, err := ConfigPath("phasewatch")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.yaml", path)
}

func TestConfigPathDefault(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	dir, err := ConfigDir()
	require.NoError(t, err)

	path, err := ConfigPath("phasewatch")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "phasewatch", "config.yaml"), path)
}

func TestPortFromNameIsStable(t *testing.T) {
	port := portFromName("phasewatch")
	assert.Equal(t, port, portFromName("phasewatch"))
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
}

func TestSecondInstanceActivatesFirst(t *testing.T) {
	name := fmt.Sprintf("phasewatch-test-%d", time.Now().UnixNano())
	guard, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	defer guard.Release()

	activated := make(chan struct{}, 1)
	guard.Serve(func() { activated <- struct{}{} })

	_, err = AcquireSingleInstance(name)
	assert.True(t, errors.Is(err, ErrAlreadyRunning))

	select {
	case <-activated:
	case <-time.After(2 * time.Second):
		t.Fatal("running instance was not activated")
	}

	require.NoError(t, guard.Release())
	again, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}
