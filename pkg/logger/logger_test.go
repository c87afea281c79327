package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" DEBUG ", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.in))
		})
	}
}

func TestNewStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewStructuredLogger(&buf, "navd", "v1.0.0", "warn")

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept", "menu", "main")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "navd", rec["module"])
	assert.Equal(t, "v1.0.0", rec["version"])
	assert.Equal(t, "main", rec["menu"])
	assert.NotContains(t, rec, "source")
}

func TestSetDefaultLoggerWithFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "logs", "navd.log")
	closer, err := SetDefaultLoggerWithFile("navd", "test", "info", path)
	require.NoError(t, err)

	slog.Info("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to file"`)

	closer, err = SetDefaultLoggerWithFile("navd", "test", "info", "")
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
}
