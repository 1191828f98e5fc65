// Package logging builds the slog loggers used across tasklist.
package logging

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// EnvDebug turns on the debug log file for the terminal UI when set to 1
const EnvDebug = "TASKLIST_DEBUG"

// DebugLogPath is where the terminal UI logs when EnvDebug is set
const DebugLogPath = "/tmp/tasklist-debug.log"

// New returns a logger writing to w. Terminals get the text handler,
// anything else (pipes, files, CI) gets JSON.
func New(w io.Writer, level slog.Level) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(w) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ForTUI returns a logger that never touches the terminal. When EnvDebug is
// 1 it appends to DebugLogPath; otherwise it discards. The returned close
// function must be called on exit.
func ForTUI() (*slog.Logger, func() error) {
	if os.Getenv(EnvDebug) != "1" {
		return Discard(), func() error { return nil }
	}
	f, err := os.OpenFile(DebugLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return Discard(), func() error { return nil }
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, f.Close
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
