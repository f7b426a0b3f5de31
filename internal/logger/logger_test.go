package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/naka-gawa/readme-stats/internal/config"
)

func TestNewWithConfig(t *testing.T) {
	testCases := []struct {
		name          string
		cfg           config.LoggerConfig
		expectedLevel zapcore.Level
	}{
		{name: "production json", cfg: config.LoggerConfig{Level: "info", Format: "json", Output: "stderr"}, expectedLevel: zapcore.InfoLevel},
		{name: "debug console", cfg: config.LoggerConfig{Level: "debug", Format: "console", Output: "stdout"}, expectedLevel: zapcore.DebugLevel},
		{name: "unknown level falls back to info", cfg: config.LoggerConfig{Level: "loud", Format: "json"}, expectedLevel: zapcore.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			log, err := NewWithConfig(tc.cfg)
			require.NoError(t, err)
			require.NotNil(t, log)
			assert.Equal(t, tc.expectedLevel, log.Level())
		})
	}
}

func TestNewWithConfig_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.log")

	log, err := NewWithConfig(config.LoggerConfig{Level: "warn", Format: "json", Output: path})

	require.NoError(t, err)
	log.Warnw("written", "key", "value")
	assert.NoError(t, log.Sync())
	assert.FileExists(t, path)
}
