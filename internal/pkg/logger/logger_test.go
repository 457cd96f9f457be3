package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()
	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e LogEntry
		require.NoError(t, json.Unmarshal([]byte(line), &e))
		entries = append(entries, e)
	}
	return entries
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger("WARN", &buf)

	l.Debug("debug", nil)
	l.Info("info", nil)
	l.Warn("zona com avisos", map[string]interface{}{"zone_id": 3})
	l.Error("falha", errors.New("boom"))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[0].Level)
	assert.Equal(t, "golayout", entries[0].Service)
	assert.EqualValues(t, 3, entries[0].Fields["zone_id"])
	assert.Equal(t, "ERROR", entries[1].Level)
	assert.Equal(t, "boom", entries[1].Error)
}

func TestLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger("verbose", &buf)

	l.Debug("escondido", nil)
	l.Info("visível", nil)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "visível", entries[0].Message)
}

func TestLogger_FatalExits(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger("info", &buf)
	code := -1
	l.exit = func(c int) { code = c }

	l.Fatal("sem banco", errors.New("dial tcp"))

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), `"level":"FATAL"`)
}
