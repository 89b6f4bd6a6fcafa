// FILE: stats.go
package qlog

// Stats is a point-in-time snapshot of engine counters. Counters are
// diagnostic only; none of them affect delivery behavior.
type Stats struct {
	// Processed counts entries delivered to the sink set.
	Processed uint64
	// Dropped counts entries rejected under DropWhenFull.
	Dropped uint64
	// Overwritten counts oldest entries evicted under OverwriteWhenFull.
	Overwritten uint64
	// SpinWaits counts retry iterations spent in FlushWhenFull pushes.
	// A rapidly growing value means producers are outpacing a stalled
	// consumer.
	SpinWaits uint64
	// WriteFailures counts sink write errors absorbed by the pipeline.
	WriteFailures uint64
	// QueueDepth is the occupied slot count at snapshot time.
	QueueDepth int
}

// Stats returns a snapshot of the logger's counters.
func (l *Logger) Stats() Stats {
	s := Stats{
		Processed:     l.state.Processed.Load(),
		Dropped:       l.state.Dropped.Load(),
		WriteFailures: l.sinks.writeFailures(),
	}
	if l.queue != nil {
		s.Overwritten = l.queue.overwritten.Load()
		s.SpinWaits = l.queue.spinWaits.Load()
		s.QueueDepth = l.queue.len()
	}
	return s
}
