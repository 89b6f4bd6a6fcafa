// FILE: level.go
package qlog

import (
	"fmt"
	"strings"
)

// Level is the severity of a log entry. Levels are totally ordered and
// spaced so callers can define intermediate custom levels if needed.
type Level int64

const (
	LevelTrace   Level = -4
	LevelInfo    Level = 0
	LevelMessage Level = 4
	LevelWarn    Level = 8
	LevelError   Level = 12

	// LevelDisabled is a sentinel usable only as a configured minimum.
	// It is above every loggable level, so a logger configured with it
	// rejects everything. It is never valid as an entry's own level.
	LevelDisabled Level = 16
)

// String returns the level name used in rendered output.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelInfo:
		return "INFO"
	case LevelMessage:
		return "MESSAGE"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelDisabled:
		return "DISABLED"
	default:
		return fmt.Sprintf("LEVEL(%d)", int64(l))
	}
}

// ParseLevel converts a level name to its numeric constant.
func ParseLevel(levelStr string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "trace":
		return LevelTrace, nil
	case "info":
		return LevelInfo, nil
	case "message":
		return LevelMessage, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "disabled":
		return LevelDisabled, nil
	default:
		return 0, fmtErrorf("invalid level string: '%s' (use trace, info, message, warn, error, disabled)", levelStr)
	}
}

// loggable reports whether the level is valid for an entry (not the sentinel).
func (l Level) loggable() bool {
	return l >= LevelTrace && l < LevelDisabled
}
