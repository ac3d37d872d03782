package logs

import (
	"bytes"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerPrefixesOwner(t *testing.T) {
	var buffer bytes.Buffer
	logger := NewLogger("overlay")
	logger.SetOutput(&buffer)

	logger.Info("started")

	assert.Contains(t, buffer.String(), "[overlay] started")
}

func TestSetLevel(t *testing.T) {
	defer func() { level = log.InfoLevel }()

	require.NoError(t, SetLevel("debug"))
	assert.Equal(t, log.DebugLevel, NewLogger("x").GetLevel())

	assert.Error(t, SetLevel("loud"))
	assert.Equal(t, log.DebugLevel, NewLogger("x").GetLevel())
}
