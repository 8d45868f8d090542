package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newBufferLogger(t *testing.T, level zapcore.Level) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg := NewDefaultConfig()
	cfg.Level = level
	cfg.Format = "json"
	l, err := NewLoggerTo(cfg, zapcore.AddSync(&buf))
	require.NoError(t, err)
	return l, &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestNewLoggerTo_InvalidConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Format = "xml"
	_, err := NewLoggerTo(cfg, zapcore.AddSync(&bytes.Buffer{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLogger_JSONCarriesFieldsAndRunID(t *testing.T) {
	l, buf := newBufferLogger(t, zapcore.InfoLevel)
	ctx := WithRunID(context.Background(), "abc-123")

	l.Info(ctx, "scan complete", zap.Int("loops", 6))

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "scan complete", lines[0]["msg"])
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "patrol", lines[0]["service"])
	assert.Equal(t, "abc-123", lines[0]["run_id"])
	assert.EqualValues(t, 6, lines[0]["loops"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	l, buf := newBufferLogger(t, zapcore.DebugLevel)
	ctx := context.Background()

	l.Trace(ctx, "hidden")
	l.Debug(ctx, "shown")
	assert.False(t, l.Enabled(TraceLevel))
	assert.True(t, l.Enabled(zapcore.DebugLevel))

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["msg"])
}

func TestLogger_TraceLevelName(t *testing.T) {
	l, buf := newBufferLogger(t, TraceLevel)
	l.Trace(context.Background(), "tick")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "trace", lines[0]["level"])
}

func TestLogger_NamedAndWith(t *testing.T) {
	l, buf := newBufferLogger(t, zapcore.InfoLevel)
	l.Named("scanner").With(zap.String("grid", "10x10")).Warn(context.Background(), "slow")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "scanner", lines[0]["logger"])
	assert.Equal(t, "10x10", lines[0]["grid"])
	assert.Equal(t, "warn", lines[0]["level"])
}

func TestNewNop_Discards(t *testing.T) {
	l := NewNop()
	l.Error(context.Background(), "nothing")
	assert.False(t, l.Enabled(zapcore.ErrorLevel))
	assert.NoError(t, l.Sync())
}

func TestLevelFromString(t *testing.T) {
	for in, want := range map[string]zapcore.Level{
		"trace": TraceLevel,
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	} {
		got, err := LevelFromString(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := LevelFromString("loud")
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Fields = map[string]string{"": "x"}
	assert.Error(t, cfg.Validate())

	cfg.Fields = map[string]string{"k": ""}
	assert.Error(t, cfg.Validate())
}

func TestContextFields(t *testing.T) {
	assert.Empty(t, ContextFields(context.Background()))
	assert.Empty(t, RunIDFromContext(nil)) //nolint:staticcheck // nil context is handled

	ctx := WithRunID(context.Background(), "r1")
	assert.Equal(t, "r1", RunIDFromContext(ctx))
	fields := ContextFields(ctx)
	require.Len(t, fields, 1)
	assert.Equal(t, "run_id", fields[0].Key)
}

func TestTestLogger_Assertions(t *testing.T) {
	tl := NewTestLogger()
	tl.Info(WithRunID(context.Background(), "r9"), "hello", zap.Int("n", 3))

	tl.AssertLogged(t, zapcore.InfoLevel, "hello")
	tl.AssertNotLogged(t, zapcore.ErrorLevel, "hello")
	tl.AssertField(t, "hello", "n", int64(3))
	tl.AssertField(t, "hello", "run_id", "r9")
	assert.Len(t, tl.All(), 1)
	assert.Equal(t, 1, tl.FilterMessage("hello").Len())

	tl.Reset()
	assert.Empty(t, tl.All())
}
