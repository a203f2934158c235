package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"yaraan/internal/config"
	"yaraan/internal/logging"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FileLogging(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, err := logging.New(config.LoggerConfig{
		FileLoggingEnabled: true,
		Directory:          dir,
		Filename:           "test.log",
		MaxSize:            1,
		MaxBackups:         1,
		MaxAge:             1,
	})
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())

	logger.Info().Str("order", "o-1").Msg("order placed")

	data, err := os.ReadFile(filepath.Join(dir, "test.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"order":"o-1"`)
	assert.Contains(t, string(data), "order placed")
}

func TestNew_DebugLevel(t *testing.T) {
	logger, err := logging.New(config.LoggerConfig{DebugModeEnabled: true})
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}
