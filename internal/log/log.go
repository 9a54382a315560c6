// Package log provides a process-wide structured logger built on log/slog.
//
// Logging is disabled by default because the TUI owns the terminal; it is
// switched on explicitly with Enable or EnableFile (the -l flag).
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	enabled bool
	level   = new(slog.LevelVar)
	logger  = slog.New(slog.NewTextHandler(io.Discard, nil))
	logFile *os.File
)

// Enable routes log output to w at debug level.
func Enable(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeFileLocked()
	level.Set(slog.LevelDebug)
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	enabled = true
}

// EnableFile routes log output to the given file, creating it if needed.
func EnableFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	closeFileLocked()
	logFile = f
	level.Set(slog.LevelDebug)
	logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	enabled = true
	return nil
}

// Disable discards all subsequent log output.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	closeFileLocked()
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	enabled = false
}

// IsEnabled reports whether logging is currently active.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetLevel adjusts the minimum level for the active logger.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// With returns a logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger.With(args...)
}

func closeFileLocked() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func Debug(msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Error(msg, args...)
}

func DebugContext(ctx context.Context, msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	logger.DebugContext(ctx, msg, args...)
}

func InfoContext(ctx context.Context, msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	logger.InfoContext(ctx, msg, args...)
}

func WarnContext(ctx context.Context, msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	logger.WarnContext(ctx, msg, args...)
}

func ErrorContext(ctx context.Context, msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	logger.ErrorContext(ctx, msg, args...)
}
