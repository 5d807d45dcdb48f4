package app

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kk-code-lab/skillsearch/internal/config"
)

func TestNewLoggerDiscardsWithoutFile(t *testing.T) {
	cfg := config.Default()
	cfg.LogFile = ""

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	defer closeLog()
	if logger.Out != io.Discard {
		t.Fatalf("expected discarded output, got %T", logger.Out)
	}
}

func TestNewLoggerAppendsToFile(t *testing.T) {
	cfg := config.Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "skillsearch.log")
	cfg.LogLevel = "debug"

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.WithField("key", "plumber").Debug("cache hit")
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "cache hit") || !strings.Contains(string(data), "key=plumber") {
		t.Fatalf("unexpected log contents %q", data)
	}
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "loud"
	if _, _, err := newLogger(cfg); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
