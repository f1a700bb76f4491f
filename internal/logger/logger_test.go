package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestParseLogLevel maps flag values to levels and rejects the rest.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" INFO ":  zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok, s)
		require.Equal(t, lvl, got, s)
	}

	for _, s := range []string{"fatal", "loud"} {
		_, ok := ParseLogLevel(s)
		require.False(t, ok, s)
	}
}

// TestNew_WritesPlainConsoleLines checks the encoder used for non-terminal sinks.
func TestNew_WritesPlainConsoleLines(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	l := New(zapcore.InfoLevel, &out).Named("resolver")
	l.Debugw("Hidden")
	l.Warnw("Tunable below minimum, clamping", "key", "CPU_UPPER_LIMIT_VCPUS_DATA_POINTS")

	line := out.String()
	require.NotContains(t, line, "Hidden")
	require.Contains(t, line, ", WARN, resolver, ")
	require.Contains(t, line, "Tunable below minimum, clamping")
	require.Contains(t, line, `"key": "CPU_UPPER_LIMIT_VCPUS_DATA_POINTS"`)
}

// TestContext_ScopedLogger verifies context helpers carry and enrich the logger.
func TestContext_ScopedLogger(t *testing.T) {
	t.Parallel()

	// Without a scoped logger the global one is returned.
	require.Same(t, Logger(), FromContext(context.Background()))

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(core).Sugar())

	ctx = WithName(ctx, "resolver")
	ctx = WithKV(ctx, "source", "env")

	WarnKV(ctx, "Clamped", "key", "PERIOD_MINUTES")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "resolver", entries[0].LoggerName)
	require.Equal(t, zapcore.WarnLevel, entries[0].Level)
	require.Equal(t, "env", entries[0].ContextMap()["source"])
	require.Equal(t, "PERIOD_MINUTES", entries[0].ContextMap()["key"])
}
