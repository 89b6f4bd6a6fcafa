// FILE: compat/builder.go
package compat

import (
	"fmt"

	"github.com/qforge/qlog"
)

// Builder provides a flexible way to create configured logger adapters
// for gnet and fasthttp. It can use an existing *qlog.Logger instance or
// create a new one from a *qlog.Config.
type Builder struct {
	logger *qlog.Logger
	logCfg *qlog.Config
	err    error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithLogger specifies an existing logger to use for the adapters.
// Recommended for applications that already have a central logger
// instance. If this is set WithConfig is ignored.
func (b *Builder) WithLogger(l *qlog.Logger) *Builder {
	if l == nil {
		b.err = fmt.Errorf("qlog/compat: provided logger cannot be nil")
		return b
	}
	b.logger = l
	return b
}

// WithConfig provides a configuration for a new logger instance. Used
// only if an existing logger is NOT provided via WithLogger.
func (b *Builder) WithConfig(cfg *qlog.Config) *Builder {
	b.logCfg = cfg
	return b
}

// getLogger resolves the logger to be used, creating one if necessary
func (b *Builder) getLogger() (*qlog.Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.logger != nil {
		return b.logger, nil
	}

	cfg := b.logCfg
	if cfg == nil {
		cfg = qlog.DefaultConfig()
	}

	l, err := qlog.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("qlog/compat: failed to create logger: %w", err)
	}
	b.logger = l
	return l, nil
}

// BuildGnet returns a gnet-compatible adapter
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(l, opts...), nil
}

// BuildFastHTTP returns a fasthttp-compatible adapter
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(l, opts...), nil
}
