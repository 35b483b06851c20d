// Package logging configures slog for the interactions API: text output to
// the console, JSON output to daily rotating files with retention cleanup.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// RotatingLogger writes to one log file per day and removes files older
// than the retention period whenever it rotates.
type RotatingLogger struct {
	logDir     string
	retention  time.Duration
	mu         sync.Mutex
	file       *os.File
	currentDay string
}

// NewRotatingLogger creates a rotating logger keeping retentionDays of files.
func NewRotatingLogger(logDir string, retentionDays int) *RotatingLogger {
	return &RotatingLogger{
		logDir:    logDir,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
	}
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// rotate opens the file for day, closing the previous one. Caller holds mu.
func (rl *RotatingLogger) rotate(day string) error {
	if rl.file != nil {
		if err := rl.file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file during rotation: %v\n", err)
		}
	}

	logPath := filepath.Join(rl.logDir, fmt.Sprintf("app-%s.log", day))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	rl.file = file
	rl.currentDay = day

	rl.cleanupOldLogs()
	return nil
}

// Write implements io.Writer, rotating to a new file on day change.
func (rl *RotatingLogger) Write(p []byte) (int, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	day := dayKey(time.Now())
	if rl.file == nil || rl.currentDay != day {
		if err := rl.rotate(day); err != nil {
			return 0, err
		}
	}

	return rl.file.Write(p)
}

// cleanupOldLogs removes log files past the retention window. Caller holds mu.
func (rl *RotatingLogger) cleanupOldLogs() {
	entries, err := os.ReadDir(rl.logDir)
	if err != nil {
		return
	}

	cutoff := time.Now().Add(-rl.retention)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "app-") || !strings.HasSuffix(name, ".log") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(rl.logDir, name))
		}
	}
}

// Close closes the current log file.
func (rl *RotatingLogger) Close() error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.file != nil {
		err := rl.file.Close()
		rl.file = nil
		return err
	}
	return nil
}

// SetupLogger configures slog to write text to the console and JSON to a
// rotating file under logDir. When the directory cannot be created, logging
// degrades to console only.
func SetupLogger(logDir string, retentionDays int, level slog.Level) *slog.Logger {
	consoleHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		logger := slog.New(consoleHandler)
		logger.Error("Failed to create logs directory, logging to console only", "error", err)
		return logger
	}

	rotating := NewRotatingLogger(logDir, retentionDays)
	fileHandler := slog.NewJSONHandler(rotating, &slog.HandlerOptions{Level: level})

	return slog.New(&multiHandler{handlers: []slog.Handler{consoleHandler, fileHandler}})
}

// multiHandler fans a record out to every underlying handler.
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}
