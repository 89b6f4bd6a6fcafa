// FILE: sink.go
package qlog

import (
	"bufio"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Sink is an output destination for rendered entries with its own
// severity filter. Implementations must never propagate write failures
// past Sink; failures are absorbed and recorded in a counter so the
// logging pipeline stays non-failing from the caller's perspective.
type Sink interface {
	// Sink writes the entry if it passes the sink's level filter.
	Sink(e Entry)
	// Level returns the sink's minimum level.
	Level() Level
	// SetLevel updates the minimum level. Safe at any time; under the
	// Direct policy the caller is responsible for serialization as with
	// every other operation.
	SetLevel(level Level)
	// Flush pushes buffered output toward the destination.
	Flush() error
	// Close flushes and releases the destination.
	Close() error
}

// failureCounter is implemented by sinks that track absorbed write errors.
type failureCounter interface {
	WriteFailures() uint64
}

// levelGate holds a sink's minimum level.
type levelGate struct {
	min atomic.Int64
}

func (g *levelGate) Level() Level {
	return Level(g.min.Load())
}

func (g *levelGate) SetLevel(level Level) {
	g.min.Store(int64(level))
}

// ConsoleSink writes entries to a console stream, usually os.Stdout or
// os.Stderr. An optional ceiling keeps low-severity traffic on stdout and
// high-severity traffic on stderr when both sinks are installed.
type ConsoleSink struct {
	levelGate
	w        io.Writer
	ceiling  atomic.Int64
	failures atomic.Uint64
}

// NewConsoleSink creates a console sink with the given minimum level.
func NewConsoleSink(w io.Writer, min Level) *ConsoleSink {
	s := &ConsoleSink{w: w}
	s.SetLevel(min)
	s.ceiling.Store(int64(LevelDisabled))
	return s
}

// SetCeiling sets the highest level the sink accepts. LevelDisabled
// removes the ceiling.
func (s *ConsoleSink) SetCeiling(level Level) {
	s.ceiling.Store(int64(level))
}

// Sink writes the entry text to the console stream.
func (s *ConsoleSink) Sink(e Entry) {
	if e.Level < s.Level() || int64(e.Level) > s.ceiling.Load() {
		return
	}
	if _, err := s.w.Write(e.Text); err != nil {
		s.failures.Add(1)
	}
}

// Flush is a no-op; console streams are unbuffered at this layer.
func (s *ConsoleSink) Flush() error { return nil }

// Close is a no-op; the sink does not own the console stream.
func (s *ConsoleSink) Close() error { return nil }

// WriteFailures returns the number of absorbed write errors.
func (s *ConsoleSink) WriteFailures() uint64 { return s.failures.Load() }

// bufferedWriter is the file sink's buffered write/flush dependency.
// All methods are safe for concurrent use.
type bufferedWriter struct {
	mu sync.Mutex
	w  *bufio.Writer
	c  io.Closer
}

func newBufferedWriter(wc io.WriteCloser, size int) *bufferedWriter {
	if size <= 0 {
		size = 4096
	}
	return &bufferedWriter{
		w: bufio.NewWriterSize(wc, size),
		c: wc,
	}
}

func (b *bufferedWriter) Write(p []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := b.w.Write(p)
	return err
}

func (b *bufferedWriter) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.w.Flush()
}

func (b *bufferedWriter) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	err := b.w.Flush()
	if cerr := b.c.Close(); cerr != nil {
		err = combineErrors(err, cerr)
	}
	return err
}

// FileSink writes entries to a rotating log file. Rotation and retention
// are delegated to lumberjack; writes go through a buffered writer that
// the consumer flushes periodically and on shutdown.
type FileSink struct {
	levelGate
	bw       *bufferedWriter
	failures atomic.Uint64
}

// FileSinkOptions configures rotation and buffering of a file sink.
// Zero values fall back to lumberjack defaults (no backup or age limit,
// 100MB rotation size).
type FileSinkOptions struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	BufferSize int
}

// NewFileSink creates a file sink appending to path.
func NewFileSink(path string, min Level, opts FileSinkOptions) *FileSink {
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}
	s := &FileSink{
		bw: newBufferedWriter(lj, opts.BufferSize),
	}
	s.SetLevel(min)
	return s
}

// Sink writes the entry text to the buffered file.
func (s *FileSink) Sink(e Entry) {
	if e.Level < s.Level() {
		return
	}
	if err := s.bw.Write(e.Text); err != nil {
		s.failures.Add(1)
	}
}

// Flush drains the write buffer to the file.
func (s *FileSink) Flush() error {
	return s.bw.Flush()
}

// Close flushes and closes the underlying file.
func (s *FileSink) Close() error {
	return s.bw.Close()
}

// WriteFailures returns the number of absorbed write errors.
func (s *FileSink) WriteFailures() uint64 { return s.failures.Load() }

// FuncSink forwards entries to a caller-supplied callback. Used for
// custom destinations and as a recorder in tests.
type FuncSink struct {
	levelGate
	fn      func(Entry)
	onFlush func() error
	onClose func() error
}

// NewFuncSink creates a sink that invokes fn for each accepted entry.
func NewFuncSink(min Level, fn func(Entry)) *FuncSink {
	s := &FuncSink{fn: fn}
	s.SetLevel(min)
	return s
}

// OnFlush installs a callback invoked by Flush. Set it before the sink is
// handed to a logger.
func (s *FuncSink) OnFlush(fn func() error) *FuncSink {
	s.onFlush = fn
	return s
}

// OnClose installs a callback invoked by Close. Set it before the sink is
// handed to a logger.
func (s *FuncSink) OnClose(fn func() error) *FuncSink {
	s.onClose = fn
	return s
}

// Sink invokes the callback if the entry passes the level filter.
func (s *FuncSink) Sink(e Entry) {
	if e.Level < s.Level() || s.fn == nil {
		return
	}
	s.fn(e)
}

// Flush invokes the flush callback if one is installed.
func (s *FuncSink) Flush() error {
	if s.onFlush == nil {
		return nil
	}
	return s.onFlush()
}

// Close invokes the close callback if one is installed.
func (s *FuncSink) Close() error {
	if s.onClose == nil {
		return nil
	}
	return s.onClose()
}

// defaultFileName builds the timestamped default log file name.
func defaultFileName(name, ext string, now time.Time) string {
	return name + "_" + now.Format("20060102_150405") + "." + ext
}
