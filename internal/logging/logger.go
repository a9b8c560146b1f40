// Package logging builds the process logger: human-readable lines on stderr
// and the same lines in a per-run file under the logs folder.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultDir is where log files go when no folder is given.
const DefaultDir = "./logs"

// FileName returns the log file name for a run started at t.
func FileName(t time.Time) string {
	return t.Format("20060102150405") + ".log"
}

// New returns a logger writing to stderr and to dir/<timestamp>.log, the
// path of that file, and a close func that flushes and closes it. The file
// always gets debug lines; stderr gets them only when verbose is set.
func New(dir string, verbose bool) (*zap.Logger, string, func(), error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, "", nil, fmt.Errorf("logging: create %s: %w", dir, err)
	}

	path := filepath.Join(dir, FileName(time.Now()))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, "", nil, fmt.Errorf("logging: open %s: %w", path, err)
	}

	consoleLevel := zapcore.InfoLevel
	if verbose {
		consoleLevel = zapcore.DebugLevel
	}

	encoder := zapcore.NewConsoleEncoder(encoderConfig())
	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), zap.NewAtomicLevelAt(consoleLevel)),
		zapcore.NewCore(encoder.Clone(), zapcore.AddSync(f), zap.NewAtomicLevelAt(zapcore.DebugLevel)),
	)
	logger := zap.New(core)

	closeFn := func() {
		_ = logger.Sync()
		_ = f.Close()
	}
	return logger, path, closeFn, nil
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.ConsoleSeparator = " - "
	return cfg
}
