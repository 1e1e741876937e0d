package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   DEBUG,
		" INFO ":  INFO,
		"warn":    WARN,
		"error":   ERROR,
		"":        WARN,
		"verbose": WARN,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(Config{Level: WARN}, &buf)
	require.NoError(t, err)

	logger.Slog().Info("hidden")
	logger.Slog().Warn("could not fetch index information", "error", "boom")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "could not fetch index information")
	assert.Contains(t, out, "error=boom")
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(Config{Level: DEBUG, JSONFormat: true}, &buf)
	require.NoError(t, err)

	logger.Slog().With("component", "stats").Debug("collected")
	assert.True(t, strings.HasPrefix(buf.String(), "{"))
	assert.Contains(t, buf.String(), `"component":"stats"`)
}

func TestLogger_FileOutputAndRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "dbstats.log")

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), 64), 0644))

	var console bytes.Buffer
	logger, err := newLogger(Config{Level: INFO, OutputFile: path, MaxSize: 32}, &console)
	require.NoError(t, err)

	logger.Slog().Info("after rotation")
	require.NoError(t, logger.Close())

	rotated, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.Len(t, rotated, 64)

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(current), "after rotation")
	assert.Contains(t, console.String(), "after rotation")
}

func TestDefaultConfig(t *testing.T) {
	assert.Equal(t, WARN, DefaultConfig(false).Level)
	assert.Equal(t, DEBUG, DefaultConfig(true).Level)
	assert.True(t, DefaultConfig(true).AddSource)
}
