package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger with the console + rotated-file setup used by the
// inventory launcher.
//
// Example:
//
//	logger, err := NewLoggerWithConfig(zapcore.InfoLevel, false, "bootstrap.log", DefaultFileWriterConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
//	logger.Info("data file ready", zap.String("path", target))
type Logger struct {
	zap *zap.Logger
}

// NewLoggerWithConfig creates a Logger that tees console output on stderr
// (coloured text in development, JSON otherwise) into logFilePath, rotated by
// lumberjack. The parent directory of logFilePath is created if missing.
func NewLoggerWithConfig(level zapcore.Level, isDevelopment bool, logFilePath string, fileConfig FileWriterConfig) (*Logger, error) {
	if logFilePath == "" {
		return nil, fmt.Errorf("log file path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(logFilePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	core := NewMultiCoreWithWriters(
		level,
		zapcore.Lock(zapcore.AddSync(os.Stderr)),
		NewFileWriterWithConfig(logFilePath, fileConfig),
		isDevelopment,
	)

	zapLogger := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1), // Skip this wrapper layer
	)

	return &Logger{zap: zapLogger}, nil
}

// New wraps an existing zap.Logger. Tests use it with zaptest/observer.
func New(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{zap: z}
}

// NewNop returns a Logger that discards everything.
func NewNop() *Logger {
	return New(zap.NewNop())
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	if l == nil || l.zap == nil {
		return nil
	}
	return l.zap.Sync()
}

func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.zap.Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.zap.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.zap.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.zap.Error(msg, fields...)
}

// With creates a child logger whose entries all carry fields.
//
// Example:
//
//	runLogger := logger.With(zap.String("run_id", id))
//	runLogger.Info("bootstrap started")
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{zap: l.zap.With(fields...)}
}

// Named adds a sub-logger name, e.g. logger.Named("bootstrap").
func (l *Logger) Named(name string) *Logger {
	return &Logger{zap: l.zap.Named(name)}
}
