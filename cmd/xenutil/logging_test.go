package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for idx, tc := range []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
		{"trace", slog.LevelWarn},
	} {
		t.Run(fmt.Sprintf("case_%d", idx), func(t *testing.T) {
			require.Equal(t, tc.want, parseLevel(tc.name))
		})
	}
}

func TestParseFormat(t *testing.T) {
	require.Equal(t, FormatJSON, parseFormat("json"))
	require.Equal(t, FormatJSON, parseFormat("JSON"))
	require.Equal(t, FormatText, parseFormat("text"))
	require.Equal(t, FormatText, parseFormat(""))
}

func TestNewLogger(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(&buf, slog.LevelInfo, FormatJSON)
		logger.Debug("hidden")
		logger.Info("shown", "input", "3/2")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "INFO", entry["level"])
		require.Equal(t, "shown", entry["msg"])
		require.Equal(t, "3/2", entry["input"])

		ts, ok := entry["time"].(string)
		require.True(t, ok)
		_, err := time.Parse(time.RFC3339, ts)
		require.NoError(t, err)
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(&buf, slog.LevelWarn, FormatText)
		logger.Info("hidden")
		logger.Warn("shown", "limit", 7)

		out := buf.String()
		require.NotContains(t, out, "hidden")
		require.Contains(t, out, "level=WARN")
		require.Contains(t, out, "msg=shown")
		require.Contains(t, out, "limit=7")
	})
}
