package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func testLoggerConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "json",
		Output:     "stdout",
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
}

func TestNew_Levels(t *testing.T) {
	t.Run("honors the configured level", func(t *testing.T) {
		cfg := testLoggerConfig()
		cfg.Level = "debug"

		log, err := New(cfg)
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		cfg := testLoggerConfig()
		cfg.Level = "loud"

		log, err := New(cfg)
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	})
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice-service.log")
	cfg := testLoggerConfig()
	cfg.Output = path

	log, err := New(cfg)
	require.NoError(t, err)

	log.Info("invoice created")
	require.NoError(t, Sync(log))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), `"msg":"invoice created"`))
}

func TestNew_UnwritableOutputFallsBack(t *testing.T) {
	cfg := testLoggerConfig()
	cfg.Output = filepath.Join(t.TempDir(), "missing", "nested", "invoice.log")

	log, err := New(cfg)
	require.NoError(t, err)
	// Must stay usable even though the sink fell back.
	log.Info("still logging")
}
