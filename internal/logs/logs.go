package logs

import (
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"
)

// formatter adds the owner tag to each log entry.
type formatter struct {
	owner string
	lf    log.Formatter
}

// Format satisfies the log.Formatter interface.
func (f *formatter) Format(e *log.Entry) ([]byte, error) {
	e.Message = fmt.Sprintf("[%s] %s", f.owner, e.Message)
	return f.lf.Format(e)
}

var level = log.InfoLevel

// SetLevel sets the level used by loggers created afterwards.
// Unknown names leave the current level unchanged.
func SetLevel(name string) error {
	parsed, err := log.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	level = parsed
	return nil
}

// NewLogger returns a logger whose messages are prefixed with owner.
func NewLogger(owner string) *log.Logger {
	logger := log.New()
	logger.SetLevel(level)
	logger.SetFormatter(&formatter{
		owner: owner,
		lf: &log.TextFormatter{
			ForceColors:     true,
			FullTimestamp:   true,
			TimestampFormat: time.StampMilli,
		},
	})
	return logger
}

// Discard returns a logger that drops every entry.
func Discard() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}
