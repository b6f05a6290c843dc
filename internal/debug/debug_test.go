package debug

import (
	"context"
	"log/slog"
	"testing"
)

func TestWithDebug(t *testing.T) {
	ctx := WithDebug(context.Background(), true)
	if !IsEnabled(ctx) {
		t.Error("IsEnabled should report true after WithDebug(true)")
	}
}

func TestIsEnabled_DefaultFalse(t *testing.T) {
	if IsEnabled(context.Background()) {
		t.Error("IsEnabled should report false on a bare context")
	}
}

func TestWithDebug_Disabled(t *testing.T) {
	ctx := WithDebug(context.Background(), false)
	if IsEnabled(ctx) {
		t.Error("IsEnabled should report false after WithDebug(false)")
	}
}

func TestFromEnv(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"0", false},
		{"false", false},
		{"1", true},
		{"true", true},
		{"yes", false},
	}
	for _, tc := range cases {
		t.Setenv("GYAZO_DEBUG", tc.value)
		if got := FromEnv(); got != tc.want {
			t.Errorf("FromEnv with GYAZO_DEBUG=%q = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestSetupLogger_DebugEnabled(t *testing.T) {
	SetupLogger(true)

	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("SetupLogger(true) should enable debug level logging")
	}
}

func TestSetupLogger_DebugDisabled(t *testing.T) {
	SetupLogger(false)

	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("SetupLogger(false) should suppress debug level logging")
	}
	if !slog.Default().Enabled(context.Background(), slog.LevelWarn) {
		t.Error("SetupLogger(false) should keep warn level logging")
	}
}
