package logging

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		" DEBUG ": zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
	}
	for raw, want := range cases {
		got, ok := ParseLevel(raw)
		require.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}
	_, ok := ParseLevel("")
	assert.False(t, ok)
	_, ok = ParseLevel("loud")
	assert.False(t, ok)
}

func TestParseBool(t *testing.T) {
	v, ok := parseBool("true")
	assert.True(t, ok)
	assert.True(t, v)
	_, ok = parseBool("maybe")
	assert.False(t, ok)
	_, ok = parseBool(" ")
	assert.False(t, ok)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogTimestamp, "false")
	t.Setenv(EnvLogNoColor, "1")
	t.Setenv(EnvLogFile, "/tmp/folk.log")

	cfg := defaultConfig(ProfileRuntime)
	applyEnvOverrides(&cfg)
	assert.Equal(t, zerolog.ErrorLevel, cfg.Level)
	assert.False(t, cfg.Timestamp)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "/tmp/folk.log", cfg.File)
}

func TestOptions(t *testing.T) {
	cfg := defaultConfig(ProfileTest)
	WithLevel("warn")(&cfg)
	WithFile("  out.log ")(&cfg)
	WithLevel("nonsense")(&cfg)
	assert.Equal(t, zerolog.WarnLevel, cfg.Level)
	assert.Equal(t, "out.log", cfg.File)
}

func TestRotatingFileDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folkd.log")
	lj := rotatingFile(Config{File: path, MaxSizeMB: 50})
	assert.Equal(t, path, lj.Filename)
	assert.Equal(t, 50, lj.MaxSize)
	assert.Equal(t, 1, lj.MaxBackups)
	assert.Equal(t, 7, lj.MaxAge)

	logger := New(Config{Level: zerolog.InfoLevel, File: path, NoColor: true})
	logger.Info().Str("k", "v").Msg("written")
	assert.FileExists(t, path)
}
