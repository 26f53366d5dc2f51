package logx

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		raw  string
		want Level
		ok   bool
	}{
		{"debug", LevelDebug, true},
		{"WARNING", LevelWarn, true},
		{" error ", LevelError, true},
		{"", LevelInfo, true},
		{"loud", LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "debug").With(String("comp", "loop"))
	log.Info("polled", Int64("window", 1000))

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "loop", m["comp"])
	assert.Equal(t, float64(1000), m["window"])
	assert.Equal(t, "polled", m["message"])
	assert.True(t, strings.HasPrefix(m["caller"].(string), "logging_test.go:"))
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "warn")
	log.Info("dropped")
	assert.Zero(t, buf.Len())
	log.Log(LevelError, "kept")
	assert.Contains(t, buf.String(), "kept")
	assert.False(t, log.Enabled(LevelDebug))
}

func TestZeroLoggerIsNop(t *testing.T) {
	var log Logger
	assert.True(t, log.IsZero())
	log.Error("nothing happens")
}

func TestMinLevelWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &minLevelWriter{w: &buf, min: zerolog.ErrorLevel}
	n, err := w.WriteLevel(zerolog.InfoLevel, []byte("info\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Zero(t, buf.Len())
	_, _ = w.WriteLevel(zerolog.ErrorLevel, []byte("error\n"))
	assert.Equal(t, "error\n", buf.String())
}

func TestServiceFileSinkKeepsErrorsOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bot.log")
	svc, log := New(Config{Level: "debug", File: FileConfig{Enabled: true, Path: path}})
	log.Info("routine")
	log.Error("broken")
	require.NoError(t, svc.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "routine")
	assert.Contains(t, string(b), "broken")
}
