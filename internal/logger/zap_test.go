package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/idilsaglam/healthlog/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewZapLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	cfg := &config.Config{
		App:    config.App{Env: "production"},
		Logger: config.Logger{Level: "debug", OutputFileName: path},
	}

	log, err := NewZapLogger(cfg, true)
	require.NoError(t, err)
	log.Info("hello")
	_ = log.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
	assert.Contains(t, string(b), `"level":"info"`)
}

func TestNewZapLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	cfg := &config.Config{
		Logger: config.Logger{Level: "chatty", OutputFileName: filepath.Join(t.TempDir(), "x.log")},
	}
	log, err := NewZapLogger(cfg, true)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
}
