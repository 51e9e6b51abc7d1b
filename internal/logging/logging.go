// Package logging installs the slog logger used by the CLI.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

var (
	errorColor = color.New(color.FgRed)
	warnColor  = color.New(color.FgYellow)
	debugColor = color.New(color.Faint)
)

// CLIHandler is a slog.Handler that writes one plain line per record.
type CLIHandler struct {
	mu     *sync.Mutex
	writer io.Writer
	level  slog.Level
	prefix string
	attrs  []slog.Attr
}

// NewCLIHandler returns a handler writing records at or above level to w.
func NewCLIHandler(w io.Writer, level slog.Level) *CLIHandler {
	return &CLIHandler{mu: &sync.Mutex{}, writer: w, level: level}
}

// Enabled implements slog.Handler.
func (h *CLIHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle implements slog.Handler.
func (h *CLIHandler) Handle(_ context.Context, r slog.Record) error {
	msg := r.Message
	if h.prefix != "" {
		msg = "[" + h.prefix + "] " + msg
	}

	attrs := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		attrs = append(attrs, fmt.Sprintf("%s=%v", a.Key, a.Value))
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, fmt.Sprintf("%s=%v", a.Key, a.Value))
		return true
	})
	if len(attrs) > 0 {
		msg = msg + ": " + strings.Join(attrs, " ")
	}

	switch {
	case r.Level >= slog.LevelError:
		msg = errorColor.Sprint("ERROR: " + msg)
	case r.Level >= slog.LevelWarn:
		msg = warnColor.Sprint("WARN: " + msg)
	case r.Level < slog.LevelInfo:
		msg = debugColor.Sprint(msg)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.writer, msg)
	return err
}

// WithAttrs implements slog.Handler.
func (h *CLIHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup implements slog.Handler.
func (h *CLIHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.prefix = name
	return &clone
}

// LevelForVerbosity maps -v counts to levels: 0 errors only, 1 info, 2 debug.
func LevelForVerbosity(verbosity int) slog.Level {
	switch {
	case verbosity <= 0:
		return slog.LevelError
	case verbosity == 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// NewCLILogger returns a logger writing to stderr.
func NewCLILogger(verbosity int) *slog.Logger {
	return slog.New(NewCLIHandler(os.Stderr, LevelForVerbosity(verbosity)))
}

// SetDefaultCLILogger installs the CLI logger as the slog default.
func SetDefaultCLILogger(verbosity int) {
	slog.SetDefault(NewCLILogger(verbosity))
}
