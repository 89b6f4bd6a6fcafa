package compat

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qforge/qlog"
)

// captureSink records delivered entries for adapter assertions
type captureSink struct {
	mu      sync.Mutex
	entries []string
	levels  []qlog.Level
}

func (c *captureSink) record(e qlog.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, strings.TrimSpace(string(e.Text)))
	c.levels = append(c.levels, e.Level)
}

func (c *captureSink) snapshot() ([]string, []qlog.Level) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.entries...), append([]qlog.Level(nil), c.levels...)
}

// createTestAdapterLogger creates a logger delivering to a capture sink
func createTestAdapterLogger(t *testing.T) (*qlog.Logger, *captureSink) {
	t.Helper()
	capture := &captureSink{}

	cfg := qlog.DefaultConfig()
	cfg.Level = qlog.LevelTrace
	cfg.ShowTimestamp = false
	cfg.ShowLevel = false
	cfg.EnableFile = false
	cfg.EnableConsole = false
	cfg.FlushIntervalMs = 10

	logger, err := qlog.New(cfg, qlog.NewFuncSink(qlog.LevelTrace, capture.record))
	require.NoError(t, err)
	return logger, capture
}

// TestCompatBuilder verifies the adapter builder resolves its logger correctly
func TestCompatBuilder(t *testing.T) {
	t.Run("with existing logger", func(t *testing.T) {
		logger, _ := createTestAdapterLogger(t)
		defer logger.Shutdown(time.Second)

		gnetAdapter, err := NewBuilder().WithLogger(logger).BuildGnet()
		require.NoError(t, err)
		assert.NotNil(t, gnetAdapter)
		assert.Equal(t, logger, gnetAdapter.logger)
	})

	t.Run("with config", func(t *testing.T) {
		cfg := qlog.DefaultConfig()
		cfg.EnableFile = false
		cfg.EnableConsole = false
		cfg.Directory = t.TempDir()

		adapter, err := NewBuilder().WithConfig(cfg).BuildFastHTTP()
		require.NoError(t, err)
		assert.NotNil(t, adapter)
		defer adapter.logger.Shutdown(time.Second)
	})

	t.Run("nil logger rejected", func(t *testing.T) {
		_, err := NewBuilder().WithLogger(nil).BuildGnet()
		assert.Error(t, err)
	})

	t.Run("shared logger across adapters", func(t *testing.T) {
		logger, _ := createTestAdapterLogger(t)
		defer logger.Shutdown(time.Second)

		b := NewBuilder().WithLogger(logger)
		gnetAdapter, err := b.BuildGnet()
		require.NoError(t, err)
		fasthttpAdapter, err := b.BuildFastHTTP()
		require.NoError(t, err)

		assert.Equal(t, gnetAdapter.logger, fasthttpAdapter.logger)
	})
}

// TestGnetAdapterLevels verifies each printf method maps to the right level
func TestGnetAdapterLevels(t *testing.T) {
	logger, capture := createTestAdapterLogger(t)
	adapter := NewGnetAdapter(logger)

	adapter.Debugf("debug %d", 1)
	adapter.Infof("info %d", 2)
	adapter.Warnf("warn %d", 3)
	adapter.Errorf("error %d", 4)

	require.NoError(t, logger.FlushWait(time.Second))
	entries, levels := capture.snapshot()

	require.Len(t, entries, 4)
	assert.Equal(t, []qlog.Level{qlog.LevelTrace, qlog.LevelInfo, qlog.LevelWarn, qlog.LevelError}, levels)
	assert.Contains(t, entries[0], "debug 1")
	assert.Contains(t, entries[3], "error 4")
	for _, e := range entries {
		assert.Contains(t, e, "gnet")
	}

	require.NoError(t, logger.Shutdown(time.Second))
}

// TestGnetAdapterFatal verifies Fatalf flushes and invokes the handler
// instead of exiting when one is installed
func TestGnetAdapterFatal(t *testing.T) {
	logger, capture := createTestAdapterLogger(t)

	var fatalMsg string
	adapter := NewGnetAdapter(logger, WithFatalHandler(func(msg string) {
		fatalMsg = msg
	}))

	adapter.Fatalf("unrecoverable: %s", "disk gone")

	assert.Equal(t, "unrecoverable: disk gone", fatalMsg)

	// The flush inside Fatalf already delivered the entry.
	entries, levels := capture.snapshot()
	require.Len(t, entries, 1)
	assert.Equal(t, qlog.LevelError, levels[0])
	assert.Contains(t, entries[0], "unrecoverable: disk gone")

	require.NoError(t, logger.Shutdown(time.Second))
}

// TestFastHTTPAdapterPrintf verifies level detection from message content
func TestFastHTTPAdapterPrintf(t *testing.T) {
	logger, capture := createTestAdapterLogger(t)
	adapter := NewFastHTTPAdapter(logger)

	adapter.Printf("serving on %s", ":8080")         // default level
	adapter.Printf("error serving request: %v", 500) // detected error
	adapter.Printf("warning: connection deprecated") // detected warning
	adapter.Printf("debug: handler registered")      // detected trace

	require.NoError(t, logger.FlushWait(time.Second))
	_, levels := capture.snapshot()

	require.Len(t, levels, 4)
	assert.Equal(t, qlog.LevelInfo, levels[0])
	assert.Equal(t, qlog.LevelError, levels[1])
	assert.Equal(t, qlog.LevelWarn, levels[2])
	assert.Equal(t, qlog.LevelTrace, levels[3])

	require.NoError(t, logger.Shutdown(time.Second))
}

// TestFastHTTPAdapterOptions verifies default level and detector overrides
func TestFastHTTPAdapterOptions(t *testing.T) {
	logger, capture := createTestAdapterLogger(t)
	adapter := NewFastHTTPAdapter(logger,
		WithDefaultLevel(qlog.LevelWarn),
		WithLevelDetector(func(string) (qlog.Level, bool) { return 0, false }),
	)

	adapter.Printf("error text that the detector ignores")

	require.NoError(t, logger.FlushWait(time.Second))
	_, levels := capture.snapshot()

	require.Len(t, levels, 1)
	assert.Equal(t, qlog.LevelWarn, levels[0])

	require.NoError(t, logger.Shutdown(time.Second))
}

// TestDetectLogLevel verifies keyword classification
func TestDetectLogLevel(t *testing.T) {
	tests := []struct {
		msg    string
		want   qlog.Level
		wantOk bool
	}{
		{"request failed with timeout", qlog.LevelError, true},
		{"PANIC in handler", qlog.LevelError, true},
		{"warning: slow response", qlog.LevelWarn, true},
		{"api deprecated since v2", qlog.LevelWarn, true},
		{"trace span opened", qlog.LevelTrace, true},
		{"listening on :8080", 0, false},
	}

	for _, tt := range tests {
		got, ok := DetectLogLevel(tt.msg)
		assert.Equal(t, tt.wantOk, ok, tt.msg)
		if tt.wantOk {
			assert.Equal(t, tt.want, got, tt.msg)
		}
	}
}
