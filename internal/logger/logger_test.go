package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Levels(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error", "WARNING"} {
		l, err := New(level)
		require.NoError(t, err, "level %q", level)
		require.NotNil(t, l)
	}
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("verbose")
	require.Error(t, err)
}

func TestFromContext(t *testing.T) {
	t.Run("logger present", func(t *testing.T) {
		l := NewNop()
		ctx := NewContext(context.Background(), l)

		got, err := FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, l, got)
	})

	t.Run("logger missing", func(t *testing.T) {
		got, err := FromContext(context.Background())
		assert.ErrorIs(t, err, ErrLoggerNotFound)
		assert.Nil(t, got)
	})
}

func TestLog(t *testing.T) {
	carried := NewNop()
	fallback := NewNop()

	assert.Same(t, carried, Log(NewContext(context.Background(), carried), fallback))
	assert.Same(t, fallback, Log(context.Background(), fallback))

	l := Log(context.Background(), nil)
	require.NotNil(t, l)
	// Must not panic
	l.Info(context.Background(), "dropped")
}

func TestWrap_WritesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := Wrap(zap.New(core)).With(zap.String("component", "store"))

	ctx := context.Background()
	l.Debug(ctx, "debug msg")
	l.Info(ctx, "info msg", zap.Int("count", 2))
	l.Warn(ctx, "warn msg")
	l.Error(ctx, "error msg")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, "info msg", entries[1].Message)
	assert.Equal(t, int64(2), entries[1].ContextMap()["count"])
	assert.Equal(t, "store", entries[0].ContextMap()["component"])
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func TestWithFields_AddsContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := Wrap(zap.New(core))

	ctx := WithFields(context.Background(), zap.String("request_id", "01ABC"))
	ctx = WithFields(ctx, zap.String("route", "/notes"))
	l.Info(ctx, "handled", zap.Int("status", 200))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "01ABC", fields["request_id"])
	assert.Equal(t, "/notes", fields["route"])
	assert.Equal(t, int64(200), fields["status"])
}
