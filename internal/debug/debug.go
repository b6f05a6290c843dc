// Package debug carries the verbose-mode flag through context and wires
// slog accordingly. Request traces in the API client key off it.
package debug

import (
	"context"
	"log/slog"
	"os"
	"strconv"
)

type debugKey struct{}

// WithDebug returns a context with debug mode enabled or disabled.
func WithDebug(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, debugKey{}, enabled)
}

// IsEnabled reports whether debug mode is on in ctx.
func IsEnabled(ctx context.Context) bool {
	enabled, ok := ctx.Value(debugKey{}).(bool)
	return ok && enabled
}

// FromEnv reports whether GYAZO_DEBUG requests debug mode. Truthy values
// follow strconv.ParseBool.
func FromEnv() bool {
	v, err := strconv.ParseBool(os.Getenv("GYAZO_DEBUG"))
	return err == nil && v
}

// SetupLogger points the default slog logger at stderr, at debug level
// when enabled and warn level otherwise.
func SetupLogger(debugEnabled bool) {
	level := slog.LevelWarn
	if debugEnabled {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
