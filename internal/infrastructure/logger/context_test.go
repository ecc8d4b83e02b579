package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContext(t *testing.T) {
	logger := zap.NewNop()
	ctx := WithContext(context.Background(), logger)

	retrieved := FromContext(ctx)
	assert.Equal(t, logger, retrieved)
}

func TestFromContext_NotSet(t *testing.T) {
	retrieved := FromContext(context.Background())
	assert.NotNil(t, retrieved)
}

func TestWithRequestID(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	ctx, enriched := WithRequestID(context.Background(), logger, "req-123")

	assert.Equal(t, "req-123", GetRequestID(ctx))

	enriched.Info("test message")
	entries := observed.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "req-123", entries[0].ContextMap()["request_id"])
}

func TestGetRequestID_NotSet(t *testing.T) {
	assert.Equal(t, "", GetRequestID(context.Background()))
}

func TestL(t *testing.T) {
	t.Run("returns context logger with request id", func(t *testing.T) {
		core, observed := observer.New(zapcore.InfoLevel)
		logger := zap.New(core)

		ctx := WithContext(context.Background(), logger)
		ctx = context.WithValue(ctx, RequestIDKey, "req-456")

		L(ctx).Info("hello")

		entries := observed.All()
		assert.Len(t, entries, 1)
		assert.Equal(t, "req-456", entries[0].ContextMap()["request_id"])
	})

	t.Run("no-op logger when context is empty", func(t *testing.T) {
		assert.NotPanics(t, func() {
			L(context.Background()).Info("ignored")
		})
	})
}
