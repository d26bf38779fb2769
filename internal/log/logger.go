// Package log wraps log/slog with the verbosity levels used by the CLI and
// the gateway.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Verbosity levels
const (
	LevelQuiet = iota // Default: only errors and warnings
	LevelInfo         // -v: requests served, result counts
	LevelDebug        // -vv: upstream calls, enrichment failures
	LevelTrace        // -vvv: full details
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Custom slog levels mapped to our verbosity
const (
	slogLevelTrace = slog.Level(-8) // Below debug
)

var (
	verbosity  int
	logger     *slog.Logger
	output     io.Writer
	format     string
	inProgress bool // tracks if we have an in-progress line
)

// Initialize sets up the global text logger with the specified verbosity level.
func Initialize(level int, w io.Writer) {
	InitializeFormat(level, FormatText, w)
}

// InitializeFormat sets up the global logger with the specified verbosity
// level and output format (text or json). Unknown formats fall back to text.
func InitializeFormat(level int, f string, w io.Writer) {
	verbosity = level
	output = w
	format = f
	logger = slog.New(newHandler(w, f, slogLevelFor(level)))
}

func slogLevelFor(level int) slog.Level {
	switch {
	case level >= LevelTrace:
		return slogLevelTrace
	case level >= LevelDebug:
		return slog.LevelDebug
	case level >= LevelInfo:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

func newHandler(w io.Writer, f string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if f == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Info logs at info level (-v)
func Info(msg string, args ...any) {
	if verbosity >= LevelInfo {
		clearProgress()
		logger.Info(msg, args...)
	}
}

// Debug logs at debug level (-vv)
func Debug(msg string, args ...any) {
	if verbosity >= LevelDebug {
		clearProgress()
		logger.Debug(msg, args...)
	}
}

// Trace logs at trace level (-vvv)
func Trace(msg string, args ...any) {
	if verbosity >= LevelTrace {
		clearProgress()
		logger.Log(context.Background(), slogLevelTrace, msg, args...)
	}
}

// Warn logs at warn level (always visible)
func Warn(msg string, args ...any) {
	clearProgress()
	logger.Warn(msg, args...)
}

// Error logs at error level (always visible)
func Error(msg string, args ...any) {
	clearProgress()
	logger.Error(msg, args...)
}

// Progress prints a progress message with carriage return (no newline).
// Only shown at info level or higher, and never in json mode.
func Progress(msg string, args ...any) {
	if verbosity >= LevelInfo && format != FormatJSON {
		inProgress = true
		_, _ = fmt.Fprintf(output, "\r"+msg, args...)
	}
}

// ProgressDone completes a progress line with "done" and newline
func ProgressDone() {
	if verbosity >= LevelInfo && inProgress {
		_, _ = fmt.Fprintln(output, " done")
		inProgress = false
	}
}

// clearProgress ensures we don't write over a progress line
func clearProgress() {
	if inProgress {
		_, _ = fmt.Fprintln(output)
		inProgress = false
	}
}

// IsInfo returns true if info-level logging is enabled
func IsInfo() bool {
	return verbosity >= LevelInfo
}

// IsDebug returns true if debug-level logging is enabled
func IsDebug() bool {
	return verbosity >= LevelDebug
}

// Verbosity returns the current verbosity level
func Verbosity() int {
	return verbosity
}

// Logger returns the underlying slog logger, e.g. for http.Server.ErrorLog.
func Logger() *slog.Logger {
	return logger
}

func init() {
	// Default initialization with quiet mode to stderr
	output = os.Stderr
	verbosity = LevelQuiet
	format = FormatText
	logger = slog.New(newHandler(output, format, slog.LevelWarn))
}
