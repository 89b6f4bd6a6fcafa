// FILE: compat/gnet.go
package compat

import (
	"fmt"
	"os"

	"github.com/panjf2000/gnet/v2/pkg/logging"

	"github.com/qforge/qlog"
)

// GnetAdapter wraps a qlog.Logger to implement gnet's logging.Logger interface
type GnetAdapter struct {
	logger       *qlog.Logger
	fatalHandler func(msg string) // Customizable fatal behavior
}

var _ logging.Logger = (*GnetAdapter)(nil)

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(logger *qlog.Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// Debugf logs a debug-level message in gnet's printf style
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.logger.Trace("msg", fmt.Sprintf(format, args...), "source", "gnet")
}

// Infof logs an info-level message in gnet's printf style
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.logger.Info("msg", fmt.Sprintf(format, args...), "source", "gnet")
}

// Warnf logs a warning-level message in gnet's printf style
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.logger.Warn("msg", fmt.Sprintf(format, args...), "source", "gnet")
}

// Errorf logs an error-level message in gnet's printf style
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.logger.Error("msg", fmt.Sprintf(format, args...), "source", "gnet")
}

// Fatalf logs an error-level message, flushes, and invokes the fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.logger.Error("msg", msg, "source", "gnet", "fatal", true)
	a.logger.FlushWait(flushTimeout)
	a.fatalHandler(msg)
}
