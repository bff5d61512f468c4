package logger

import (
	"sync"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Get returns a singleton logger configured with the provided level. An empty
// level falls back to info. The first call initializes the logger; subsequent
// calls return the same instance regardless of level.
func Get(level string) *Logger {
	once.Do(func() {
		if level == "" {
			level = InfoLevel
		}
		globalLogger = newZapLogger(level)
	})
	return globalLogger
}
