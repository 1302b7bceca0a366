package logger

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// ErrLoggerNotFound is returned by FromContext when ctx carries no logger.
var ErrLoggerNotFound = errors.New("logger not found in context")

type loggerKeyType struct{}

var loggerKey = loggerKeyType{}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger stored by NewContext.
func FromContext(ctx context.Context) (*Logger, error) {
	if ctx == nil {
		return nil, ErrLoggerNotFound
	}
	logger, ok := ctx.Value(loggerKey).(*Logger)
	if !ok {
		return nil, ErrLoggerNotFound
	}
	return logger, nil
}

// Log returns the logger carried by ctx. Without one it returns fallback,
// or a no-op logger when fallback is nil too.
func Log(ctx context.Context, fallback *Logger) *Logger {
	if logger, err := FromContext(ctx); err == nil {
		return logger
	}
	if fallback != nil {
		return fallback
	}
	return NewNop()
}

type fieldsKeyType struct{}

var fieldsKey = fieldsKeyType{}

// WithFields returns a copy of ctx whose log calls also carry fields (e.g. a request ID).
func WithFields(ctx context.Context, fields ...zap.Field) context.Context {
	existing, _ := ctx.Value(fieldsKey).([]zap.Field)
	merged := make([]zap.Field, 0, len(existing)+len(fields))
	merged = append(merged, existing...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, fieldsKey, merged)
}

func withContextFields(ctx context.Context, fields []zap.Field) []zap.Field {
	if ctx == nil {
		return fields
	}
	extra, ok := ctx.Value(fieldsKey).([]zap.Field)
	if !ok || len(extra) == 0 {
		return fields
	}
	return append(append(make([]zap.Field, 0, len(extra)+len(fields)), extra...), fields...)
}
