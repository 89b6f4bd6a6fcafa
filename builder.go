// FILE: builder.go
package qlog

// Builder provides a fluent API for building logger configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg   *Config
	sinks []Sink
	err   error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Logger instance with the specified configuration.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}
	return New(b.cfg, b.sinks...)
}

// Level sets the minimum log level.
func (b *Builder) Level(level Level) *Builder {
	b.cfg.Level = level
	return b
}

// LevelString sets the minimum log level from a string.
func (b *Builder) LevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	levelVal, err := ParseLevel(level)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.Level = levelVal
	return b
}

// ThreadingPolicy sets the threading policy.
func (b *Builder) ThreadingPolicy(p ThreadingPolicy) *Builder {
	b.cfg.ThreadingPolicy = p.String()
	return b
}

// OverflowPolicy sets the queue overflow policy.
func (b *Builder) OverflowPolicy(p OverflowPolicy) *Builder {
	b.cfg.OverflowPolicy = p.String()
	return b
}

// QueueCapacity sets the ring buffer slot count for queued policies.
func (b *Builder) QueueCapacity(capacity int64) *Builder {
	b.cfg.QueueCapacity = capacity
	return b
}

// Format sets the output format.
func (b *Builder) Format(format string) *Builder {
	b.cfg.Format = format
	return b
}

// Directory sets the log directory for the default file sink.
func (b *Builder) Directory(dir string) *Builder {
	b.cfg.Directory = dir
	return b
}

// Name sets the base name for log files.
func (b *Builder) Name(name string) *Builder {
	b.cfg.Name = name
	return b
}

// Extension sets the log file extension.
func (b *Builder) Extension(ext string) *Builder {
	b.cfg.Extension = ext
	return b
}

// EnableFile toggles the default file sink.
func (b *Builder) EnableFile(enable bool) *Builder {
	b.cfg.EnableFile = enable
	return b
}

// EnableConsole toggles the default console sinks.
func (b *Builder) EnableConsole(enable bool) *Builder {
	b.cfg.EnableConsole = enable
	return b
}

// Sinks supplies an explicit ordered sink collection, replacing the
// defaults derived from the config.
func (b *Builder) Sinks(sinks ...Sink) *Builder {
	b.sinks = sinks
	return b
}

// Example usage:
// logger, err := qlog.NewBuilder().
//
//	Directory("/var/log/app").
//	LevelString("trace").
//	ThreadingPolicy(qlog.Queued).
//	OverflowPolicy(qlog.OverwriteWhenFull).
//	QueueCapacity(4096).
//	Build()
//
// if err == nil {
//
//	 defer logger.Shutdown()
//	 logger.Info("Logger initialized successfully")
//
// }
