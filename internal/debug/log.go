// Package debug writes a diagnostic log file while the TUI owns the terminal.
package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu     sync.Mutex
	file   *os.File
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// Enable starts debug logging to path, truncating any previous log.
func Enable(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	file = f
	logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("debug logging started")
	return nil
}

// Disable closes the log file.
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Logger returns the current logger, tagged with a component name.
func Logger(component string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger.With("component", component)
}

// Log writes a debug record for component.
func Log(component, msg string, args ...any) {
	Logger(component).Debug(msg, args...)
}

// Writer returns an io.Writer that logs each write as a warning for
// component. Use it where a component reports to a writer but stderr
// belongs to the TUI.
func Writer(component string) io.Writer {
	return warnWriter(component)
}

type warnWriter string

func (w warnWriter) Write(p []byte) (int, error) {
	Logger(string(w)).Warn(strings.TrimSpace(string(p)))
	return len(p), nil
}
