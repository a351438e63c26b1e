package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// syncLogger ignores the "invalid argument" error Linux returns when syncing a terminal.
func syncLogger(t testing.TB, logger *Logger) {
	t.Helper()
	if err := logger.Sync(); err != nil && !strings.Contains(err.Error(), "invalid argument") {
		t.Logf("Sync() warning: %v", err)
	}
}

func TestNewLoggerWithConfig_WritesFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "logs", "bootstrap.log")

	logger, err := NewLoggerWithConfig(zapcore.InfoLevel, false, logPath, DefaultFileWriterConfig())
	if err != nil {
		t.Fatalf("NewLoggerWithConfig() error: %v", err)
	}
	defer syncLogger(t, logger)

	logger.Info("bootstrap started", zap.String("run_id", "abc"))
	syncLogger(t, logger)

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(content), "bootstrap started") {
		t.Errorf("log file missing entry, got %q", content)
	}
	if !strings.Contains(string(content), `"run_id":"abc"`) {
		t.Errorf("log file missing field, got %q", content)
	}
}

func TestNewLoggerWithConfig_DebugLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "dev.log")

	logger, err := NewLoggerWithConfig(zapcore.DebugLevel, true, logPath, DefaultFileWriterConfig())
	if err != nil {
		t.Fatalf("NewLoggerWithConfig() error: %v", err)
	}
	logger.Debug("resolving seed")
	syncLogger(t, logger)

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(content), "resolving seed") {
		t.Errorf("debug entry should be written at debug level, got %q", content)
	}
}

func TestNewLoggerWithConfig_FiltersBelowLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "prod.log")

	logger, err := NewLoggerWithConfig(zapcore.WarnLevel, false, logPath, DefaultFileWriterConfig())
	if err != nil {
		t.Fatalf("NewLoggerWithConfig() error: %v", err)
	}
	logger.Info("quiet entry")
	logger.Warn("loud entry")
	syncLogger(t, logger)

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if strings.Contains(string(content), "quiet entry") {
		t.Errorf("info entry should be filtered at warn level, got %q", content)
	}
	if !strings.Contains(string(content), "loud entry") {
		t.Errorf("warn entry missing, got %q", content)
	}
}

func TestNewLoggerWithConfig_EmptyPath(t *testing.T) {
	if _, err := NewLoggerWithConfig(zapcore.InfoLevel, false, "", DefaultFileWriterConfig()); err == nil {
		t.Fatal("expected error for empty log path")
	}
}

func TestLogger_WithAndNamed(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := New(zap.New(core)).Named("bootstrap").With(zap.String("run_id", "r1"))

	logger.Info("copied seed")
	logger.Warn("target is odd")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].LoggerName != "bootstrap" {
		t.Errorf("LoggerName = %q, want bootstrap", entries[0].LoggerName)
	}
	if entries[0].ContextMap()["run_id"] != "r1" {
		t.Errorf("run_id = %v, want r1", entries[0].ContextMap()["run_id"])
	}
	if entries[1].Message != "target is odd" {
		t.Errorf("Warn message = %q", entries[1].Message)
	}
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	logger.Error("discarded")
	if err := logger.Sync(); err != nil {
		t.Errorf("Sync() on nop logger: %v", err)
	}
	var nilLogger *Logger
	if err := nilLogger.Sync(); err != nil {
		t.Errorf("Sync() on nil logger: %v", err)
	}
}
