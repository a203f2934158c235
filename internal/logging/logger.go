// Package logging builds the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"yaraan/internal/config"
)

// New builds a logger from cfg, writing to stderr and, when enabled, a rolling file.
func New(cfg config.LoggerConfig) (*zerolog.Logger, error) {
	var writers []io.Writer
	if cfg.ConsoleLoggingEnabled {
		writers = append(writers, zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = os.Stderr
			w.TimeFormat = time.RFC3339
		}))
	} else {
		writers = append(writers, os.Stderr)
	}
	if cfg.FileLoggingEnabled {
		file, err := newRollingFile(cfg)
		if err != nil {
			return nil, err
		}
		writers = append(writers, file)
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().Timestamp().Logger()

	if cfg.DebugModeEnabled {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	logger.Info().
		Bool("consoleLogging", cfg.ConsoleLoggingEnabled).
		Bool("debugMode", cfg.DebugModeEnabled).
		Bool("fileLogging", cfg.FileLoggingEnabled).
		Str("logDirectory", cfg.Directory).
		Str("fileName", cfg.Filename).
		Msg("logging configured")

	return &logger, nil
}

func newRollingFile(cfg config.LoggerConfig) (io.Writer, error) {
	if err := os.MkdirAll(cfg.Directory, 0o744); err != nil {
		return nil, fmt.Errorf("can't create log directory %s: %w", cfg.Directory, err)
	}

	return &lumberjack.Logger{
		Filename:   path.Join(cfg.Directory, cfg.Filename),
		MaxBackups: cfg.MaxBackups, // files
		MaxSize:    cfg.MaxSize,    // megabytes
		MaxAge:     cfg.MaxAge,     // days
	}, nil
}
