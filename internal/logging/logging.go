package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	once     sync.Once
	instance *log.Logger
)

func logger() *log.Logger {
	once.Do(func() {
		instance = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.Kitchen,
			Prefix:          "caselist",
			Level:           log.InfoLevel,
		})
	})
	return instance
}

// SetVerbose switches debug output on or off
func SetVerbose(verbose bool) {
	if verbose {
		logger().SetLevel(log.DebugLevel)
		return
	}
	logger().SetLevel(log.InfoLevel)
}

// SetOutput redirects log output
func SetOutput(w io.Writer) {
	logger().SetOutput(w)
}

// Debug logs msg with key/value pairs at debug level
func Debug(msg string, keyvals ...interface{}) {
	logger().Debug(msg, keyvals...)
}

// Info logs msg with key/value pairs at info level
func Info(msg string, keyvals ...interface{}) {
	logger().Info(msg, keyvals...)
}

// Warn logs msg with key/value pairs at warn level
func Warn(msg string, keyvals ...interface{}) {
	logger().Warn(msg, keyvals...)
}

// Error logs msg with key/value pairs at error level
func Error(msg string, keyvals ...interface{}) {
	logger().Error(msg, keyvals...)
}
