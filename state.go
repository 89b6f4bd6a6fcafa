// FILE: state.go
package qlog

import (
	"sync/atomic"
)

// State encapsulates the runtime state of the logger. The lifecycle of a
// queued logger runs Active -> StopRequested -> Drained -> Stopped; the
// flags below are set in that order and never cleared. Direct loggers
// only ever move from Active to Stopped.
type State struct {
	ShutdownCalled atomic.Bool
	StopRequested  atomic.Bool
	Drained        atomic.Bool
	ConsumerExited atomic.Bool

	Processed atomic.Uint64
	Dropped   atomic.Uint64

	// unreportedDrops carries drops that have not yet been surfaced as a
	// re-injected report entry.
	unreportedDrops atomic.Uint64
}

// atomicLevel stores a Level with atomic load/store semantics.
type atomicLevel struct {
	v atomic.Int64
}

func (a *atomicLevel) Load() Level {
	return Level(a.v.Load())
}

func (a *atomicLevel) Store(l Level) {
	a.v.Store(int64(l))
}
