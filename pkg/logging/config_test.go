package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"":        zerolog.InfoLevel,
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"loud":    zerolog.InfoLevel,
	}
	for name, want := range tests {
		assert.Equal(t, want, ParseLevel(name), "level %q", name)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("LOG_OUTPUT", "")
	t.Setenv("NO_COLOR", "")

	cfg := ConfigFromEnv()
	assert.Equal(t, Config{Format: FormatAuto, Output: "stderr"}, cfg)

	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_OUTPUT", "stdout")
	t.Setenv("NO_COLOR", "1")

	cfg = ConfigFromEnv()
	assert.Equal(t, Config{Level: "debug", Format: "json", Output: "stdout", NoColor: true}, cfg)
}

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	logger := New(Config{Level: "warn", Format: FormatJSON, Output: path})
	logger.Info().Msg("dropped")
	logger.Warn().Str("source", "vmware").Msg("kept")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), `"source":"vmware"`)
	assert.Contains(t, string(data), `"message":"kept"`)
}

func TestNewFallsBackToStderr(t *testing.T) {
	logger := New(Config{Output: filepath.Join(t.TempDir(), "missing", "run.log")})
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestUseConsole(t *testing.T) {
	assert.True(t, useConsole(FormatConsole, os.Stderr))
	assert.False(t, useConsole(FormatJSON, os.Stderr))
	// a temp file is never a terminal
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, useConsole(FormatAuto, f))
}
