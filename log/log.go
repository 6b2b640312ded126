// Package log provides structured logging for waypoint.
// It writes leveled, categorized key=value entries to a file and fans each
// entry out over a pub/sub broker so an embedding app can show a live
// overlay. Logging is off until Init or InitWithTeaLog is called.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/waypoint/pubsub"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

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
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatNav     Category = "nav"     // Navigation lifecycle and protocol
	CatHost    Category = "host"    // Host registration and content swaps
	CatResolve Category = "resolve" // ViewModel resolution
	CatFactory Category = "factory" // View/viewmodel construction
	CatUI      Category = "ui"      // UI component updates
	CatConfig  Category = "config"  // Configuration loading/saving
)

// Logger provides structured logging.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	writer   io.Writer
	enabled  bool
	minLevel Level
	broker   *pubsub.Broker[string]
}

var (
	mu            sync.Mutex
	defaultLogger *Logger
)

// Init initializes the global logger appending to the file at path.
// Returns a cleanup function that closes the log file.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G304: path is a user-chosen debug log path
	if err != nil {
		return nil, err
	}
	return install(f), nil
}

// InitWithTeaLog uses tea.LogToFile for initialization so Bubble Tea's own
// log output lands in the same file.
func InitWithTeaLog(path string, prefix string) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, err
	}
	return install(f), nil
}

func install(f *os.File) func() {
	mu.Lock()
	defer mu.Unlock()

	// Re-initialization retires the previous logger: close its broker so
	// old listener channels end instead of going silent, and its file in
	// case the caller dropped the cleanup func.
	if prev := defaultLogger; prev != nil {
		prev.broker.Close()
		if prev.file != nil {
			_ = prev.file.Close()
		}
	}

	defaultLogger = &Logger{
		file:     f,
		writer:   f,
		enabled:  true,
		minLevel: LevelDebug,
		broker:   pubsub.NewBroker[string](),
	}
	return func() { _ = f.Close() }
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

func current() *Logger {
	mu.Lock()
	defer mu.Unlock()
	return defaultLogger
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value appended as a field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

func write(level Level, cat Category, msg string, fields ...any) {
	l := current()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || level < l.minLevel {
		return
	}

	// Format: 2025-12-06T10:45:00 [INFO] [nav] message key=value key2=value2
	timestamp := time.Now().Format("2006-01-02T15:04:05")
	entry := fmt.Sprintf("%s [%s] [%s] %s", timestamp, level, cat, msg)

	for i := 0; i+1 < len(fields); i += 2 {
		entry += fmt.Sprintf(" %v=%v", fields[i], fields[i+1])
	}
	// Odd field count - append the orphan key with no value
	if len(fields)%2 != 0 {
		entry += fmt.Sprintf(" %v=<missing>", fields[len(fields)-1])
	}
	entry += "\n"

	if l.writer != nil {
		_, _ = l.writer.Write([]byte(entry))
	}

	if l.broker != nil {
		l.broker.Publish(pubsub.LogEvent, entry)
	}
}

// Entry is a pubsub event containing a formatted log line.
type Entry = pubsub.Event[string]

// Listener wraps a continuous listener for log events.
type Listener = pubsub.ContinuousListener[string]

// NewListener creates a log event listener, or nil when logging is not
// initialized. The subscription ends when the context is cancelled.
func NewListener(ctx context.Context) *Listener {
	l := current()
	if l == nil || l.broker == nil {
		return nil
	}
	return pubsub.NewContinuousListener(ctx, l.broker)
}
