// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Package-level logger is intentional for convenience
var (
	defaultMu     sync.RWMutex
	defaultLogger *log.Logger
)

// New creates a stderr logger at the given level.
// Valid levels: "debug", "info", "warn", "error". Anything else is info.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a logger that writes to w.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	lvl, _ := ParseLevel(level)
	logger.SetLevel(lvl)
	return logger
}

// ParseLevel maps a level name to a log.Level. The boolean is false for
// unknown names, in which case InfoLevel is returned.
func ParseLevel(level string) (log.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel, true
	case "info", "":
		return log.InfoLevel, true
	case "warn", "warning":
		return log.WarnLevel, true
	case "error":
		return log.ErrorLevel, true
	default:
		return log.InfoLevel, false
	}
}

// Default returns the package-level default logger.
func Default() *log.Logger {
	defaultMu.RLock()
	logger := defaultLogger
	defaultMu.RUnlock()
	if logger != nil {
		return logger
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New("info")
	}
	return defaultLogger
}

// SetDefault replaces the package-level default logger.
func SetDefault(logger *log.Logger) {
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
}

// SetLevel updates the level of the default logger.
func SetLevel(level string) {
	lvl, _ := ParseLevel(level)
	Default().SetLevel(lvl)
}
