package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

// TracedLogger is a structured logger with automatic trace correlation.
// It wraps slog.Logger and adds run context and OpenTelemetry trace
// correlation to every entry.
type TracedLogger struct {
	logger *slog.Logger
	runID  string
	domain string
}

// NewTracedLogger creates a TracedLogger bound to one solving run. Every
// entry carries the run ID and the planning domain name; entries logged
// under an active span additionally carry trace_id and span_id.
func NewTracedLogger(handler slog.Handler, runID, domain string) *TracedLogger {
	return &TracedLogger{
		logger: slog.New(handler),
		runID:  runID,
		domain: domain,
	}
}

// Debug logs a debug-level message with automatic trace correlation.
func (l *TracedLogger) Debug(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).Debug(msg, args...)
}

// Info logs an info-level message with automatic trace correlation.
func (l *TracedLogger) Info(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).Info(msg, args...)
}

// Warn logs a warning-level message with automatic trace correlation.
func (l *TracedLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).Warn(msg, args...)
}

// Error logs an error-level message with automatic trace correlation.
func (l *TracedLogger) Error(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).Error(msg, args...)
}

// WithContext returns a slog.Logger carrying the run context plus, when the
// context holds a recording span, the trace_id and span_id fields.
func (l *TracedLogger) WithContext(ctx context.Context) *slog.Logger {
	logger := l.logger.With(
		slog.String("run_id", l.runID),
		slog.String("domain", l.domain),
	)

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		spanCtx := span.SpanContext()
		logger = logger.With(
			slog.String("trace_id", spanCtx.TraceID().String()),
			slog.String("span_id", spanCtx.SpanID().String()),
		)
	}

	return logger
}

// NewJSONHandler creates a JSON log handler with the specified output and
// level. JSON format is ideal for structured logging in production.
func NewJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
}

// NewTextHandler creates a text log handler with the specified output and
// level. Text format is human-readable and useful during development.
func NewTextHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
}

// ParseLevel maps a LoggingConfig level string onto a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}

// NewHandler builds a handler from a validated LoggingConfig for the given
// writer. The config's Output field names the destination; resolving it to a
// writer is the caller's concern so this package never opens files.
func NewHandler(cfg LoggingConfig, w io.Writer) (slog.Handler, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(cfg.Format) {
	case "json":
		return NewJSONHandler(w, level), nil
	case "text":
		return NewTextHandler(w, level), nil
	default:
		return nil, fmt.Errorf("unknown log format: %s", cfg.Format)
	}
}
