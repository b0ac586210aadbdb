package asyncapi

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopLogger(t *testing.T) {
	l := NopLogger{}
	l.Debug("msg", "k", "v")
	l.Info("msg", "k", "v")
	l.Warn("msg", "k", "v")
	l.Error("msg", "k", "v")
	_, ok := l.With("k", "v").(NopLogger)
	assert.True(t, ok, "With should return NopLogger")
}

func TestSlogAdapter(t *testing.T) {
	t.Run("nil uses default", func(t *testing.T) {
		adapter := NewSlogAdapter(nil)
		require.NotNil(t, adapter.logger)
	})

	t.Run("writes through with attributes", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		l := NewSlogAdapter(slog.New(handler)).With("source", "kafka")

		l.Debug("debug line", "channel", "orders")
		l.Info("info line")
		l.Warn("warn line")
		l.Error("error line")

		out := buf.String()
		assert.Contains(t, out, "debug line")
		assert.Contains(t, out, "channel=orders")
		assert.Contains(t, out, "source=kafka")
		assert.Contains(t, out, "level=INFO")
		assert.Contains(t, out, "level=WARN")
		assert.Contains(t, out, "level=ERROR")
	})
}

func TestLoggerOrNop(t *testing.T) {
	assert.Equal(t, NopLogger{}, LoggerOrNop(nil))

	adapter := NewSlogAdapter(nil)
	assert.Same(t, adapter, LoggerOrNop(adapter))
}
