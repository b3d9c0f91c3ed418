// Package log carries an slog.Logger through a context.Context. Library code
// logs through the context it is handed; a context without a logger discards.
package log

import (
	"context"
	"io"
	"testing"

	"cdr.dev/slog"
	"cdr.dev/slog/sloggers/sloghuman"
	"cdr.dev/slog/sloggers/slogtest"
)

var _discard = slog.Make()

type loggerKey struct{}

func from(ctx context.Context) slog.Logger {
	l, ok := ctx.Value(loggerKey{}).(slog.Logger)
	if !ok {
		return _discard
	}
	return l
}

func With(ctx context.Context, l slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// WithTB calls With with the result of slogtest.Make.
func WithTB(ctx context.Context, t testing.TB, opts *slogtest.Options) context.Context {
	return With(ctx, slogtest.Make(t, opts))
}

// Human installs a human readable logger writing to w. Without verbose only
// warnings and errors are written.
func Human(ctx context.Context, w io.Writer, verbose bool) context.Context {
	l := slog.Make(sloghuman.Sink(w))
	if verbose {
		l = l.Leveled(slog.LevelDebug)
	} else {
		l = l.Leveled(slog.LevelWarn)
	}
	return With(ctx, l)
}

func Debug(ctx context.Context, msg string, fields ...slog.Field) {
	slog.Helper()
	from(ctx).Debug(ctx, msg, fields...)
}

func Info(ctx context.Context, msg string, fields ...slog.Field) {
	slog.Helper()
	from(ctx).Info(ctx, msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...slog.Field) {
	slog.Helper()
	from(ctx).Warn(ctx, msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...slog.Field) {
	slog.Helper()
	from(ctx).Error(ctx, msg, fields...)
}

func Named(ctx context.Context, name string) context.Context {
	return With(ctx, from(ctx).Named(name))
}

func Sync(ctx context.Context) {
	from(ctx).Sync()
}
