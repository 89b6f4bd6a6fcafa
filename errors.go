// FILE: errors.go
package qlog

import (
	"errors"
	"fmt"
	"strings"
)

// Engine errors are returned, never panicked. Sink write failures are
// absorbed below this layer and only surface through counters.
var (
	// ErrLevelTooLow indicates the call's level is below the configured
	// minimum. Informational; the entry was intentionally not rendered.
	ErrLevelTooLow = errors.New("qlog: level below configured minimum")

	// ErrQueueFull indicates the entry was not queued under the drop
	// overflow policy. No retry is attempted.
	ErrQueueFull = errors.New("qlog: queue full, entry dropped")

	// ErrNotInitialized indicates the package-level API was used before
	// SetGlobal installed a logger.
	ErrNotInitialized = errors.New("qlog: global logger not initialized")

	// ErrShutdown indicates the logger has been shut down or transferred.
	ErrShutdown = errors.New("qlog: logger is shut down")
)

// fmtErrorf wrapper, keeps the package prefix consistent
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "qlog: ") {
		format = "qlog: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}
