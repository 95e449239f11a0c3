package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		entries = append(entries, entry)
	}
	return entries
}

func TestNewZapLogger_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewZapLogger("test-app", &buf)

	l.Info("fetching current weather", map[string]any{"city": "Kyiv"})
	require.NoError(t, l.Stop())

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "fetching current weather", entry["msg"])
	assert.Equal(t, "Kyiv", entry["city"])
	assert.Equal(t, "test-app", entry["app_name"])
	assert.Equal(t, l.RunID(), entry["run_id"])
	assert.Contains(t, entry["caller_file"], "zaplogger_test.go")
	assert.NotEmpty(t, entry["timestamp"])
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	l := NewZapLogger("test-app", &buf)

	l.Error(errors.New("connection refused"), map[string]any{"url": "http://localhost"})

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "error", entries[0]["level"])
	assert.Equal(t, "connection refused", entries[0]["error"])
	assert.Equal(t, "http://localhost", entries[0]["url"])
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New("test-app", Options{Level: "warn", Format: "json"}, &buf)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warning("shown")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "warn", entries[0]["level"])
	assert.Equal(t, "shown", entries[0]["msg"])
}

func TestNew_Off(t *testing.T) {
	for _, level := range []string{"", "off", "OFF"} {
		var buf bytes.Buffer
		l := New("test-app", Options{Level: level}, &buf)

		l.Error(errors.New("boom"))
		l.Warning("nothing")
		require.NoError(t, l.Stop())

		assert.Empty(t, buf.String(), "level %q", level)
		assert.NotEmpty(t, l.RunID())
	}
}

func TestNew_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New("test-app", Options{Level: "info", Format: "console"}, &buf)

	l.Info("report rendered")

	out := buf.String()
	assert.Contains(t, out, "\tinfo\t")
	assert.Contains(t, out, "report rendered")
	assert.False(t, json.Valid([]byte(strings.TrimSpace(out))))
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New("test-app", Options{Level: "chatty"}, &buf)

	l.Debug("hidden")
	l.Info("shown")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["msg"])
}

func TestLogger_RunIDIsUniquePerLogger(t *testing.T) {
	a := NewNop("a")
	b := NewNop("b")
	assert.NotEqual(t, a.RunID(), b.RunID())
}
