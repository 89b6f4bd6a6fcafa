// FILE: sinkset.go
package qlog

// SinkSet is an ordered collection of sinks. Insertion order is dispatch
// order. The set itself carries no lock: the Direct policy relies on the
// caller's serialization, DirectLocked wraps Broadcast in the Logger's
// mutex, and the queued policies confine dispatch to the consumer
// goroutine once the logger is running.
type SinkSet struct {
	sinks []Sink
}

// NewSinkSet creates a set dispatching to the given sinks in order.
func NewSinkSet(sinks ...Sink) *SinkSet {
	return &SinkSet{sinks: sinks}
}

// Add appends a sink; duplicates are not rejected.
func (ss *SinkSet) Add(s Sink) {
	ss.sinks = append(ss.sinks, s)
}

// Len returns the number of sinks in the set.
func (ss *SinkSet) Len() int {
	return len(ss.sinks)
}

// Broadcast delivers the entry to every sink in insertion order. Each
// sink applies its own level filter; write failures never surface here.
func (ss *SinkSet) Broadcast(e Entry) {
	for _, s := range ss.sinks {
		s.Sink(e)
	}
}

// Flush flushes every sink, combining any errors.
func (ss *SinkSet) Flush() error {
	var err error
	for _, s := range ss.sinks {
		if ferr := s.Flush(); ferr != nil {
			err = combineErrors(err, ferr)
		}
	}
	return err
}

// Close closes every sink, combining any errors.
func (ss *SinkSet) Close() error {
	var err error
	for _, s := range ss.sinks {
		if cerr := s.Close(); cerr != nil {
			err = combineErrors(err, cerr)
		}
	}
	return err
}

// writeFailures sums absorbed write errors across sinks that track them.
func (ss *SinkSet) writeFailures() uint64 {
	var total uint64
	for _, s := range ss.sinks {
		if fc, ok := s.(failureCounter); ok {
			total += fc.WriteFailures()
		}
	}
	return total
}
