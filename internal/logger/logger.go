// Package logger provides leveled logging for the studio.
//
// Debug, Info and Warn lines are printed only in verbose mode, which the
// --verbose flag turns on. Errors are always printed. Long-running
// commands such as serve switch on timestamps so concurrent editor
// sessions can be followed in order.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level is the severity of a log line.
type Level int

// Log levels, lowest first.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the tag printed in front of a line.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "LOG"
	}
}

var (
	mu         sync.Mutex
	verbose    bool
	timestamps bool
	output     io.Writer = os.Stderr
	now                  = time.Now
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether verbose mode is enabled.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}

// SetTimestamps prefixes every line with the time of day.
func SetTimestamps(on bool) {
	mu.Lock()
	defer mu.Unlock()
	timestamps = on
}

// SetOutput sets the writer logs go to. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug logs edit-level detail in verbose mode.
func Debug(format string, args ...any) { logf(LevelDebug, format, args...) }

// Info logs in verbose mode.
func Info(format string, args ...any) { logf(LevelInfo, format, args...) }

// Warn logs a recoverable failure in verbose mode.
func Warn(format string, args ...any) { logf(LevelWarn, format, args...) }

// Error logs regardless of verbose mode.
func Error(format string, args ...any) { logf(LevelError, format, args...) }

func logf(level Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if level < LevelError && !verbose {
		return
	}
	prefix := "[" + level.String() + "] "
	if timestamps {
		prefix = now().Format("15:04:05.000") + " " + prefix
	}
	fmt.Fprintf(output, prefix+format+"\n", args...)
}
