// FILE: global.go
package qlog

import (
	"sync/atomic"
	"time"
)

// Process-wide optional singleton. "Not yet installed" is a valid,
// checked state: package-level calls before SetGlobal return
// ErrNotInitialized rather than crashing.
var globalLogger atomic.Pointer[Logger]

// SetGlobal installs the process-wide logger. It can be installed once;
// further calls fail so two subsystems cannot silently fight over it.
func SetGlobal(l *Logger) error {
	if l == nil {
		return fmtErrorf("global logger cannot be nil")
	}
	if !globalLogger.CompareAndSwap(nil, l) {
		return fmtErrorf("global logger already installed")
	}
	return nil
}

// Global returns the installed process-wide logger.
func Global() (*Logger, error) {
	l := globalLogger.Load()
	if l == nil {
		return nil, ErrNotInitialized
	}
	return l, nil
}

// Package-level functions that delegate to the installed global logger.

// Log dispatches one record through the global logger.
func Log(level Level, args ...any) error {
	l := globalLogger.Load()
	if l == nil {
		return ErrNotInitialized
	}
	return l.Log(level, args...)
}

// Trace logs a message at trace level
func Trace(args ...any) error {
	return Log(LevelTrace, args...)
}

// Info logs a message at info level
func Info(args ...any) error {
	return Log(LevelInfo, args...)
}

// Message logs a message at message level
func Message(args ...any) error {
	return Log(LevelMessage, args...)
}

// Warn logs a message at warning level
func Warn(args ...any) error {
	return Log(LevelWarn, args...)
}

// Error logs a message at error level
func Error(args ...any) error {
	return Log(LevelError, args...)
}

// Flush asynchronously requests a drain of the global logger's queue.
func Flush() error {
	l := globalLogger.Load()
	if l == nil {
		return ErrNotInitialized
	}
	l.Flush()
	return nil
}

// FlushWait drains the global logger's queue, blocking until confirmed.
func FlushWait(timeout time.Duration) error {
	l := globalLogger.Load()
	if l == nil {
		return ErrNotInitialized
	}
	return l.FlushWait(timeout)
}

// Shutdown gracefully closes the global logger.
func Shutdown(timeout ...time.Duration) error {
	l := globalLogger.Load()
	if l == nil {
		return ErrNotInitialized
	}
	return l.Shutdown(timeout...)
}

// resetGlobal uninstalls the global logger. Test hook.
func resetGlobal() {
	globalLogger.Store(nil)
}
