package logging

import (
	"io"

	"github.com/pion/logging"
)

var loggerFactory = logging.NewDefaultLoggerFactory()

func NewLogger(scope string) logging.LeveledLogger {
	return loggerFactory.NewLogger(scope)
}

// SetLevel changes the level of loggers created after the call. Scopes set
// through PION_LOG_* environment variables keep their level.
func SetLevel(level logging.LogLevel) {
	loggerFactory.DefaultLogLevel = level
}

// SetWriter redirects loggers created after the call to w.
func SetWriter(w io.Writer) {
	loggerFactory.Writer = w
}
