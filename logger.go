package sonarscan

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger is a slog.Logger with helpers that emit sonarscan events under
// stable field names.
type Logger struct {
	*slog.Logger
}

// NewLogger wraps handler. A nil handler logs text at info level to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		return NewTextLogger(slog.LevelInfo)
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger logs JSON lines at or above level to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger logs logfmt-style lines at or above level to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewWriterLogger logs to w in the given format ("json" or "text").
func NewWriterLogger(w io.Writer, format string, level slog.Level) *Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return NewLogger(slog.NewJSONHandler(w, opts))
	}
	return NewLogger(slog.NewTextHandler(w, opts))
}

// NoopLogger discards everything.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithPath returns a logger that tags every event with the capture path.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{Logger: l.With("path", path)}
}

// outcome logs ok at okLevel, or fail at failLevel with the error attached.
func (l *Logger) outcome(ctx context.Context, err error, okLevel, failLevel slog.Level, ok, fail string, attrs ...any) {
	if err != nil {
		l.Log(ctx, failLevel, fail, append(attrs, "error", err)...)
		return
	}
	l.Log(ctx, okLevel, ok, attrs...)
}

// LogOpen logs a capture being mapped.
func (l *Logger) LogOpen(ctx context.Context, path string, size int, err error) {
	attrs := []any{"path", path}
	if err == nil {
		attrs = append(attrs, "size", size)
	}
	l.outcome(ctx, err, slog.LevelInfo, slog.LevelError, "capture mapped", "open failed", attrs...)
}

// LogFind logs a pattern search.
func (l *Logger) LogFind(ctx context.Context, needleLen, haystackLen, matches int, err error) {
	l.outcome(ctx, err, slog.LevelDebug, slog.LevelError, "find completed", "find failed",
		"needle_len", needleLen, "bytes", haystackLen, "matches", matches)
}

// LogScan logs a multi-range record scan. Cancellation is a warning.
func (l *Logger) LogScan(ctx context.Context, ranges, records int, err error) {
	l.outcome(ctx, err, slog.LevelDebug, slog.LevelWarn, "scan completed", "scan interrupted",
		"ranges", ranges, "records", records)
}

// LogFetch logs a capture spooled from a store.
func (l *Logger) LogFetch(ctx context.Context, name, path string, err error) {
	l.outcome(ctx, err, slog.LevelInfo, slog.LevelError, "capture fetched", "fetch failed",
		"name", name, "path", path)
}
