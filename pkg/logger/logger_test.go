package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewLoggerLevels(t *testing.T) {
	ctx := context.Background()

	l := newLogger("", "")
	if l.Enabled(ctx, slog.LevelDebug) {
		t.Error("default level should not emit debug")
	}
	if !l.Enabled(ctx, slog.LevelInfo) {
		t.Error("default level should emit info")
	}

	if l := newLogger("debug", ""); !l.Enabled(ctx, slog.LevelDebug) {
		t.Error("LOG_LEVEL=debug should emit debug")
	}
	if l := newLogger("warn", ""); l.Enabled(ctx, slog.LevelInfo) {
		t.Error("LOG_LEVEL=warn should drop info")
	}
	if l := newLogger("error", ""); l.Enabled(ctx, slog.LevelWarn) {
		t.Error("LOG_LEVEL=error should drop warn")
	}

	// Text format is for local runs only; level handling is identical.
	if l := newLogger("debug", "text"); !l.Enabled(ctx, slog.LevelDebug) {
		t.Error("text handler should honor the level")
	}
}

func TestWithContext(t *testing.T) {
	if got := WithContext(context.Background()); got != Default() {
		t.Error("empty context should reuse the default logger")
	}

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, UserIDKey, int64(7))
	if got := WithContext(ctx); got == Default() {
		t.Error("context ids should yield a derived logger")
	}
}
