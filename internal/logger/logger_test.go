package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("WARN")
	require.NoError(t, err)
	require.Equal(t, slog.LevelWarn, level)

	level, err = ParseLevel("")
	require.NoError(t, err)
	require.Equal(t, slog.LevelInfo, level)

	_, err = ParseLevel("verbose")
	require.Error(t, err)
}

func TestJSONFormatFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "json", slog.LevelWarn)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("physical entry missing", "op", "rename", "path", "uploads/A")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "physical entry missing", entry["msg"])
	require.Equal(t, "rename", entry["op"])
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	log, err := New(Config{Level: "debug", Format: "text", Output: path})
	require.NoError(t, err)
	log.Debug("hello")

	_, err = New(Config{Format: "xml"})
	require.Error(t, err)
}
