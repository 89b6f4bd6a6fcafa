// FILE: logger.go
package qlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Minimum wait time used throughout the package
const minWaitTime = 10 * time.Millisecond

// Logger composes a threading policy, an overflow policy, and a sink set.
// Under a queued policy it owns a bounded queue and one consumer
// goroutine whose lifetime is strictly bounded by the logger's.
type Logger struct {
	cfg *Config

	threading ThreadingPolicy
	overflow  OverflowPolicy

	minLevel atomicLevel

	sinks  *SinkSet
	sinkMu sync.Mutex // guards Broadcast under DirectLocked
	prodMu sync.Mutex // serializes producers under QueuedLocked

	queue *boundedQueue

	serializers *sync.Pool

	stop     chan struct{}
	done     chan struct{}
	flushReq chan chan struct{}

	state State
}

// New creates a logger from the configuration. If no sinks are supplied,
// the defaults are built from the config: a rotating file under the
// configured (or temp) directory, stdout for low-severity levels, and
// stderr for warnings and errors. Queued policies spawn the consumer
// goroutine immediately.
func New(cfg *Config, sinks ...Sink) (*Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Clone()

	threading, err := ParseThreadingPolicy(cfg.ThreadingPolicy)
	if err != nil {
		return nil, err
	}
	overflow, err := ParseOverflowPolicy(cfg.OverflowPolicy)
	if err != nil {
		return nil, err
	}

	if len(sinks) == 0 {
		sinks, err = defaultSinks(cfg)
		if err != nil {
			return nil, err
		}
	}

	var queue *boundedQueue
	if threading.queued() {
		queue = newBoundedQueue(int(cfg.QueueCapacity), overflow)
	}

	l := newLoggerCore(cfg, threading, overflow, NewSinkSet(sinks...), queue)
	if l.queue != nil {
		go l.consume()
	}
	return l, nil
}

// newLoggerCore wires a logger around already-built collaborators. Shared
// by New and Transfer so a respawned logger gets fresh channels and a
// fresh serializer pool.
func newLoggerCore(cfg *Config, threading ThreadingPolicy, overflow OverflowPolicy, sinks *SinkSet, queue *boundedQueue) *Logger {
	l := &Logger{
		cfg:       cfg,
		threading: threading,
		overflow:  overflow,
		sinks:     sinks,
		queue:     queue,
		serializers: &sync.Pool{
			New: func() any {
				return newSerializer(cfg.Format, cfg.TimestampFormat, cfg.ShowTimestamp, cfg.ShowLevel)
			},
		},
	}
	l.minLevel.Store(cfg.Level)
	if queue != nil {
		l.stop = make(chan struct{})
		l.done = make(chan struct{})
		l.flushReq = make(chan chan struct{}, 1)
	}
	return l
}

// defaultSinks builds the default sink collection from the config.
func defaultSinks(cfg *Config) ([]Sink, error) {
	var sinks []Sink

	if cfg.EnableFile {
		dir := cfg.Directory
		if dir == "" {
			dir = os.TempDir()
		} else if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmtErrorf("failed to create log directory '%s': %w", dir, err)
		}
		path := filepath.Join(dir, defaultFileName(cfg.Name, cfg.Extension, time.Now()))
		sinks = append(sinks, NewFileSink(path, LevelTrace, FileSinkOptions{
			MaxSizeMB:  int(cfg.MaxSizeMB),
			MaxBackups: int(cfg.MaxBackups),
			MaxAgeDays: int(cfg.MaxAgeDays),
		}))
	}

	if cfg.EnableConsole {
		stdout := NewConsoleSink(os.Stdout, LevelTrace)
		stdout.SetCeiling(LevelMessage)
		stderr := NewConsoleSink(os.Stderr, LevelWarn)
		sinks = append(sinks, stdout, stderr)
	}

	return sinks, nil
}

// Log renders and dispatches one record according to the configured
// threading policy. Levels below the configured minimum return
// ErrLevelTooLow before any rendering happens; a full queue under
// DropWhenFull returns ErrQueueFull. Both are informational, never a
// failure of the host program.
func (l *Logger) Log(level Level, args ...any) error {
	if !level.loggable() {
		return fmtErrorf("'%s' is not a loggable level", level)
	}
	if l.state.ShutdownCalled.Load() {
		return ErrShutdown
	}
	if level < l.minLevel.Load() {
		return ErrLevelTooLow
	}

	switch l.threading {
	case Direct:
		l.sinks.Broadcast(l.render(level, time.Now(), args))
		l.state.Processed.Add(1)
		return nil

	case DirectLocked:
		e := l.render(level, time.Now(), args)
		l.sinkMu.Lock()
		l.sinks.Broadcast(e)
		l.sinkMu.Unlock()
		l.state.Processed.Add(1)
		return nil

	case QueuedLocked:
		l.prodMu.Lock()
		defer l.prodMu.Unlock()
		return l.enqueue(level, args)

	default: // Queued
		return l.enqueue(level, args)
	}
}

// Trace logs a message at trace level
func (l *Logger) Trace(args ...any) error {
	return l.Log(LevelTrace, args...)
}

// Info logs a message at info level
func (l *Logger) Info(args ...any) error {
	return l.Log(LevelInfo, args...)
}

// Message logs a message at message level
func (l *Logger) Message(args ...any) error {
	return l.Log(LevelMessage, args...)
}

// Warn logs a message at warning level
func (l *Logger) Warn(args ...any) error {
	return l.Log(LevelWarn, args...)
}

// Error logs a message at error level
func (l *Logger) Error(args ...any) error {
	return l.Log(LevelError, args...)
}

// MinLevel returns the configured minimum level.
func (l *Logger) MinLevel() Level {
	return l.minLevel.Load()
}

// SetLevel updates the configured minimum level.
func (l *Logger) SetLevel(level Level) {
	l.minLevel.Store(level)
}

// AddSink appends a sink to the dispatch order. Rejected under queued
// policies once the consumer is running; build the full sink set before
// constructing the logger instead.
func (l *Logger) AddSink(s Sink) error {
	if l.state.ShutdownCalled.Load() {
		return ErrShutdown
	}
	if l.threading.queued() {
		return fmtErrorf("cannot add sinks to a running queued logger")
	}
	l.sinkMu.Lock()
	l.sinks.Add(s)
	l.sinkMu.Unlock()
	return nil
}

// render serializes the arguments into an immutable entry on the calling
// goroutine, keeping formatting off the consumer's critical path.
func (l *Logger) render(level Level, now time.Time, args []any) Entry {
	s := l.serializers.Get().(*serializer)
	data := s.serialize(now, level, args)
	text := make([]byte, len(data))
	copy(text, data)
	l.serializers.Put(s)
	return Entry{Level: level, Text: text}
}

// enqueue pushes a rendered entry into the bounded queue.
func (l *Logger) enqueue(level Level, args []any) error {
	e := l.render(level, time.Now(), args)
	if err := l.queue.push(e); err != nil {
		l.state.Dropped.Add(1)
		l.state.unreportedDrops.Add(1)
		return err
	}
	l.reportDrops()
	return nil
}

// reportDrops re-injects an error record carrying the count of entries
// dropped since the last successful report. Runs after a successful push
// so the report itself has a fair chance of fitting.
func (l *Logger) reportDrops() {
	dropped := l.state.unreportedDrops.Swap(0)
	if dropped == 0 {
		return
	}
	report := l.render(LevelError, time.Now(), []any{"entries were dropped", "dropped_count", dropped})
	if err := l.queue.push(report); err != nil {
		// Restore the count so a later push can report it.
		l.state.unreportedDrops.Add(dropped)
	}
}

// Flush asynchronously requests a full drain of the queue followed by a
// sink flush. It does not block and does not guarantee completion before
// returning; use FlushWait or Shutdown for a synchronous guarantee.
// Direct policies have nothing queued, so only sink buffers are flushed.
func (l *Logger) Flush() {
	if l.state.ShutdownCalled.Load() {
		return
	}
	if l.queue != nil {
		l.queue.requestFlush()
		return
	}
	if err := l.sinks.Flush(); err != nil {
		l.internalLog("sink flush failed: %v\n", err)
	}
}

// FlushWait drains the queue and flushes all sinks, blocking until the
// consumer confirms completion or the timeout elapses.
func (l *Logger) FlushWait(timeout time.Duration) error {
	if l.state.ShutdownCalled.Load() {
		return ErrShutdown
	}
	if l.queue == nil {
		return l.sinks.Flush()
	}

	confirm := make(chan struct{})

	select {
	case l.flushReq <- confirm:
		// Request sent
	case <-time.After(minWaitTime): // Short timeout to prevent blocking if consumer is stuck
		return fmtErrorf("failed to send flush request to consumer (possible stall or high load)")
	}

	select {
	case <-confirm:
		return nil
	case <-time.After(timeout):
		return fmtErrorf("timeout waiting for flush confirmation (%v)", timeout)
	}
}

// Shutdown stops the logger. Under a queued policy the consumer first
// finishes delivering every entry already in the queue (drain-on-exit),
// then the sinks are flushed and closed. Safe to call multiple times; the
// first call wins. If no timeout is provided, uses 2x the flush interval.
func (l *Logger) Shutdown(timeout ...time.Duration) error {
	if !l.state.ShutdownCalled.CompareAndSwap(false, true) {
		return nil
	}

	var finalErr error
	if l.queue != nil {
		var effectiveTimeout time.Duration
		if len(timeout) > 0 {
			effectiveTimeout = timeout[0]
		} else {
			effectiveTimeout = 2 * time.Duration(l.cfg.FlushIntervalMs) * time.Millisecond
		}

		close(l.stop)
		select {
		case <-l.done:
		case <-time.After(effectiveTimeout):
			finalErr = fmtErrorf("consumer did not exit within timeout (%v)", effectiveTimeout)
		}
	} else {
		l.state.StopRequested.Store(true)
		l.state.Drained.Store(true)
		l.state.ConsumerExited.Store(true)
	}

	if err := l.sinks.Close(); err != nil {
		finalErr = combineErrors(finalErr, err)
	}

	return finalErr
}

// Transfer moves the logger's state to a fresh instance. The source's
// consumer is stopped and joined first (draining the queue), then the
// sink set and queue are handed to the destination and a new consumer is
// spawned bound to the destination. The source is left shut down and
// rejects further use with ErrShutdown; the old consumer goroutine never
// outlives the transfer.
func (l *Logger) Transfer() (*Logger, error) {
	if !l.state.ShutdownCalled.CompareAndSwap(false, true) {
		return nil, ErrShutdown
	}

	if l.queue != nil {
		close(l.stop)
		<-l.done
	}

	dst := newLoggerCore(l.cfg, l.threading, l.overflow, l.sinks, l.queue)
	dst.minLevel.Store(l.minLevel.Load())
	if dst.queue != nil {
		go dst.consume()
	}
	return dst, nil
}

// internalLog handles writing internal logger diagnostics to stderr, if enabled.
func (l *Logger) internalLog(format string, args ...any) {
	if !l.cfg.InternalErrorsToStderr {
		return
	}

	if !strings.HasPrefix(format, "qlog: ") {
		format = "qlog: " + format
	}

	fmt.Fprintf(os.Stderr, format, args...)
}
