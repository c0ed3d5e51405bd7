package log

import (
	"context"
	"sync"
)

var (
	globalMu sync.RWMutex
	global   = New(Config{})
)

// SetGlobalConfig rebuilds the global logger from cfg. Hooks registered on
// the previous logger are carried over.
func SetGlobalConfig(cfg Config) {
	globalMu.Lock()
	defer globalMu.Unlock()

	logger := New(cfg)
	logger.hooks = global.hooks
	global = logger
}

func GetGlobalLogger() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()

	return global
}

func Debug(ctx context.Context, msg string, fields ...Field) {
	GetGlobalLogger().Debug(ctx, msg, fields...)
}

func Info(ctx context.Context, msg string, fields ...Field) {
	GetGlobalLogger().Info(ctx, msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...Field) {
	GetGlobalLogger().Warn(ctx, msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...Field) {
	GetGlobalLogger().Error(ctx, msg, fields...)
}

func DebugEnabled(ctx context.Context) bool {
	return GetGlobalLogger().DebugEnabled()
}
