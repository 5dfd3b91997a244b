// Package logger provides the leveled console logger used as the
// logging sink for copy and generation actions.
//
// The logger is a collaborator, not part of the core logic: the copier
// and generators report what they do (or, in dry-run mode, what they
// would do) through it, and never consult it for decisions. Output is
// mutex-guarded so concurrent workers can log safely, and warn/error
// lines are colored when the writer is a terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Level is the severity of a log message. Messages below the logger's
// configured level are discarded.
type Level int

const (
	// LevelDebug is for per-decision trace output (--verbose).
	LevelDebug Level = iota

	// LevelInfo is for copy/write actions and dry-run simulations.
	LevelInfo

	// LevelWarn is for non-fatal conditions such as missing source files.
	LevelWarn

	// LevelError is for failed operations.
	LevelError
)

// String returns the upper-case label used in log line prefixes.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLevel converts a level name to a Level. Empty or unknown names
// default to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger writes timestamped, leveled messages to a single writer.
// Format: "[HH:MM:SS] [LEVEL] message". Safe for concurrent use.
type Logger struct {
	mu       sync.Mutex
	writer   io.Writer
	level    Level
	colorize bool
}

// New creates a Logger writing to w at the given minimum level.
// If w is nil, all output is discarded. Color is enabled only when w is
// a terminal (and not suppressed via NO_COLOR, which the color package
// reflects in color.NoColor).
func New(w io.Writer, level Level) *Logger {
	return &Logger{
		writer:   w,
		level:    level,
		colorize: isTerminal(w) && !color.NoColor,
	}
}

// isTerminal reports whether the writer is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Debugf logs a debug-level message.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(LevelDebug, format, args...)
}

// Infof logs an info-level message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(LevelInfo, format, args...)
}

// Warnf logs a warn-level message.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logf(LevelWarn, format, args...)
}

// Errorf logs an error-level message.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(LevelError, format, args...)
}

// DryRunf logs an info-level message prefixed with the dry-run marker.
// All dry-run simulations go through this so their lines are uniformly
// recognizable in the output.
func (l *Logger) DryRunf(format string, args ...interface{}) {
	l.logf(LevelInfo, "[DRY RUN] "+format, args...)
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	if l.writer == nil || level < l.level {
		return
	}

	message := fmt.Sprintf(format, args...)
	prefix := fmt.Sprintf("[%s] [%s]", time.Now().Format("15:04:05"), level)

	if l.colorize {
		switch level {
		case LevelWarn:
			prefix = color.New(color.FgYellow).Sprint(prefix)
		case LevelError:
			prefix = color.New(color.FgRed).Sprint(prefix)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.writer, "%s %s\n", prefix, message)
}
