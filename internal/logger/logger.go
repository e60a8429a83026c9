package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

var (
	mu            sync.RWMutex
	defaultLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	logLevel      = new(slog.LevelVar)
)

// Init configures the process-wide logger to write to output.
// It may be called again to reconfigure; a nil output discards records.
func Init(cfg Config, output io.Writer) {
	if output == nil {
		output = io.Discard
	}

	level, ok := ParseLevel(cfg.Level)
	logLevel.Set(level)
	cfg.process()

	opts := slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					source.File = filepath.Base(source.File)
				}
			}
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
			}
			return a
		},
	}

	handler := newFilteringHandler(slog.NewTextHandler(output, &opts), &cfg)

	mu.Lock()
	defaultLogger = slog.New(handler)
	mu.Unlock()

	if !ok {
		Warnf("unknown log level %q, using info", cfg.Level)
	}
}

// SetLevel changes the minimum level without reconfiguring the output.
func SetLevel(level slog.Level) {
	logLevel.Set(level)
}

// Get returns the configured logger.
func Get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// Enabled reports whether records at level would be written.
func Enabled(level slog.Level) bool {
	return Get().Enabled(context.Background(), level)
}

// logAtLevel formats and writes a record, attributing it to the caller of
// the exported wrapper.
func logAtLevel(level slog.Level, attrs []slog.Attr, format string, args ...any) {
	l := Get()
	if !l.Enabled(context.Background(), level) {
		return
	}

	var pcs [1]uintptr
	// Skip runtime.Callers, logAtLevel and the wrapper.
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	r.AddAttrs(attrs...)
	_ = l.Handler().Handle(context.Background(), r)
}

// Debugf logs a debug message.
func Debugf(format string, args ...any) {
	logAtLevel(slog.LevelDebug, nil, format, args...)
}

// DebugTagf logs a debug message carrying a filter tag.
func DebugTagf(tag, format string, args ...any) {
	logAtLevel(slog.LevelDebug, []slog.Attr{slog.String(tagKey, tag)}, format, args...)
}

// Infof logs an info message.
func Infof(format string, args ...any) {
	logAtLevel(slog.LevelInfo, nil, format, args...)
}

// Warnf logs a warning.
func Warnf(format string, args ...any) {
	logAtLevel(slog.LevelWarn, nil, format, args...)
}

// Errorf logs an error.
func Errorf(format string, args ...any) {
	logAtLevel(slog.LevelError, nil, format, args...)
}
