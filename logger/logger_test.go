package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWriter(t *testing.T) {
	prev := L
	t.Cleanup(func() { L = prev; slog.SetDefault(prev) })

	var buf bytes.Buffer
	InitWriter(&buf, "debug", "json")

	assert.True(t, L.Enabled(context.Background(), slog.LevelDebug))

	L.Info("processed", "processing_id", "abc")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "processed", line["msg"])
	assert.Equal(t, "abc", line["processing_id"])
}

func TestNew_TextFormatRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn", "text")

	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	custom := New(&buf, "info", "text").With("request_id", "12345")

	ctx := WithContext(context.Background(), custom)
	assert.Same(t, custom, FromContext(ctx))

	FromContext(ctx).Info("hello")
	assert.Contains(t, buf.String(), "request_id=12345")
}

func TestFromContext_FallsBackToGlobal(t *testing.T) {
	assert.Same(t, L, FromContext(context.Background()))
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseLevel(tt.input), tt.input)
	}
	assert.True(t, ValidLevel("DEBUG"))
	assert.False(t, ValidLevel("trace"))
}
