package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kk-code-lab/skillsearch/internal/config"
	"github.com/sirupsen/logrus"
)

// newLogger writes to the configured log file. The terminal belongs to the
// UI, so without a log file everything is discarded.
func newLogger(cfg *config.Config) (*logrus.Logger, func() error, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	logger.SetLevel(level)

	if cfg.LogFile == "" {
		logger.SetOutput(io.Discard)
		return logger, func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o700); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", cfg.LogFile, err)
	}
	logger.SetOutput(file)
	return logger, file.Close, nil
}
