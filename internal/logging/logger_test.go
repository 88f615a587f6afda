package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rmera/gochemff/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"DEBUG": zapcore.DebugLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"info":  zapcore.InfoLevel,
		"":      zapcore.InfoLevel,
		"loud":  zapcore.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestNew(t *testing.T) {
	for _, f := range []string{"json", "console"} {
		z, err := New(config.LogConfig{Level: "debug", Format: f})
		require.NoError(t, err)
		assert.True(t, z.Core().Enabled(zapcore.DebugLevel))
	}
	z, err := New(config.LogConfig{Level: "error", Format: "json"})
	require.NoError(t, err)
	assert.False(t, z.Core().Enabled(zapcore.WarnLevel))
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	z := NewWithWriter(config.LogConfig{Level: "info", Format: "json"}, &buf)
	z.Debug("hidden")
	z.Warn("no match", zap.String("table", "angle_harm"))
	require.NoError(t, z.Sync())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "no match", entry["msg"])
	assert.Equal(t, "angle_harm", entry["table"])
	assert.Contains(t, entry, "ts")
}

func TestNewWithWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	z := NewWithWriter(config.LogConfig{Level: "warn", Format: "console"}, &buf)
	z.Info("hidden")
	z.Error("failed", zap.Int("atoms", 3))
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, `{"atoms": 3}`)
}
