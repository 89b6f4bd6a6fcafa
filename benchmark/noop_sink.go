// Package benchmark compares qlog against other logging frameworks under
// identical no-op and file-backed sinks.
package benchmark

import (
	"github.com/qforge/qlog"
)

// noopSink accepts every entry and discards it. It isolates the engine's
// own cost from destination I/O.
type noopSink struct {
	min qlog.Level
}

func newNoopSink() *noopSink {
	return &noopSink{min: qlog.LevelTrace}
}

func (s *noopSink) Sink(qlog.Entry)         {}
func (s *noopSink) Level() qlog.Level       { return s.min }
func (s *noopSink) SetLevel(min qlog.Level) { s.min = min }
func (s *noopSink) Flush() error            { return nil }
func (s *noopSink) Close() error            { return nil }
