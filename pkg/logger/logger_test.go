package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/console-weather/pkg/logger"
)

func TestNewLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.log")
	console, err := os.CreateTemp(t.TempDir(), "console")
	require.NoError(t, err)
	t.Cleanup(func() { _ = console.Close() })

	l, err := logger.NewLogger("weather", logger.Options{
		Level:    "info",
		FilePath: path,
		Console:  console,
	})
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())

	l.Info().Str("postal", "11790").Msg("resolved location")
	l.Debug().Msg("dropped")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"postal":"11790"`)
	assert.Contains(t, string(data), `"service":"weather"`)
	assert.NotContains(t, string(data), "dropped")
}

func TestNewLogger_DefaultLevel(t *testing.T) {
	l, err := logger.NewLogger("weather", logger.Options{})
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())
}

func TestNewLogger_BadLevel(t *testing.T) {
	_, err := logger.NewLogger("weather", logger.Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")

	l, err := logger.NewFileLogger(path)
	require.NoError(t, err)
	l.Info("HTTP request completed")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "HTTP request completed")
}
