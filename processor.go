// FILE: processor.go
package qlog

import (
	"time"
)

// consume is the consumer loop running in its own goroutine for queued
// policies. It pops and broadcasts buffered entries, honors flush
// requests by draining completely, and on stop finishes delivering every
// entry already in the queue before exiting.
func (l *Logger) consume() {
	defer func() {
		l.state.ConsumerExited.Store(true)
		close(l.done)
	}()

	flushTicker := time.NewTicker(time.Duration(l.cfg.FlushIntervalMs) * time.Millisecond)
	defer flushTicker.Stop()

	for {
		// Deliver whatever is buffered before idling. A pending flush
		// request also forces the sink buffers out.
		l.drain()
		if l.queue.takeFlushRequest() {
			l.drain()
			l.flushSinks()
		}

		select {
		case <-l.stop:
			l.state.StopRequested.Store(true)
			l.drain()
			l.state.Drained.Store(true)
			l.flushSinks()
			return

		case confirm := <-l.flushReq:
			l.drain()
			l.flushSinks()
			close(confirm) // Signal completion back to the FlushWait caller

		case <-l.queue.notify:
			// Loop back to drain.

		case <-flushTicker.C:
			if l.cfg.EnablePeriodicSync {
				l.flushSinks()
			}
		}
	}
}

// drain pops and broadcasts until the queue is empty.
func (l *Logger) drain() {
	for {
		e, ok := l.queue.pop()
		if !ok {
			return
		}
		l.sinks.Broadcast(e)
		l.state.Processed.Add(1)
	}
}

// flushSinks pushes buffered sink output toward the destinations.
func (l *Logger) flushSinks() {
	if err := l.sinks.Flush(); err != nil {
		l.internalLog("sink flush failed: %v\n", err)
	}
}
