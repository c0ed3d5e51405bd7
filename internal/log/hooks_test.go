package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type hookCtxKey struct{}

func ctxFields(ctx context.Context, msg string, fields ...Field) []Field {
	if ctx == nil {
		return fields
	}

	if v, ok := ctx.Value(hookCtxKey{}).(string); ok {
		fields = append(fields, String("request_id", v))
	}

	return fields
}

func TestHookFunc(t *testing.T) {
	hook := HookFunc(ctxFields)

	t.Run("with request ID", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), hookCtxKey{}, "req-1")
		fields := hook.Apply(ctx, "test message")
		assert.Len(t, fields, 1)
		assert.Equal(t, "request_id", fields[0].Key)
		assert.Equal(t, "req-1", fields[0].String)
	})

	t.Run("without request ID", func(t *testing.T) {
		fields := hook.Apply(context.Background(), "test message")
		assert.Len(t, fields, 0)
	})

	t.Run("with nil context", func(t *testing.T) {
		fields := hook.Apply(nil, "test message")
		assert.Len(t, fields, 0)
	})

	t.Run("preserves existing fields", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), hookCtxKey{}, "req-2")
		fields := hook.Apply(ctx, "test message", String("k", "v"))
		assert.Len(t, fields, 2)
		assert.Equal(t, "k", fields[0].Key)
		assert.Equal(t, "request_id", fields[1].Key)
	})
}

func TestLoggerAddHook(t *testing.T) {
	logger := New(Config{Level: "debug", Output: "stderr"})
	logger.AddHook(HookFunc(ctxFields))

	ctx := context.WithValue(context.Background(), hookCtxKey{}, "req-3")
	fields := logger.applyHooks(ctx, "msg", nil)
	assert.Len(t, fields, 1)
	assert.Equal(t, "request_id", fields[0].Key)
}
