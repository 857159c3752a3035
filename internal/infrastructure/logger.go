package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"salespulse/internal/config"
)

// Process logger state. InitializeLogger fills it once; CloseLogFile and
// ResetLoggerForTesting release it.
var (
	globalLogger     *slog.Logger
	globalLoggerOnce sync.Once
	globalLogFile    *os.File
	logFileMu        sync.Mutex
)

type contextKey string

// TraceIDContextKey carries the correlation ID stamped on every record
// logged with a context: the request ID over HTTP, one ID per CLI run.
const TraceIDContextKey contextKey = "trace_id"

// InitializeLogger builds the process logger from cfg and installs it as
// the slog default. Only the first call has an effect.
func InitializeLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	var err error
	globalLoggerOnce.Do(func() {
		globalLogger, err = buildLogger(cfg, os.Stdout)
		if globalLogger != nil {
			slog.SetDefault(globalLogger)
		}
	})
	return globalLogger, err
}

// GetLogger returns the process logger, or the slog default before
// InitializeLogger ran.
func GetLogger() *slog.Logger {
	if globalLogger == nil {
		return slog.Default()
	}
	return globalLogger
}

// NewLogger builds a JSON logger on w without touching process state.
func NewLogger(w io.Writer, level string) *slog.Logger {
	return NewFormattedLogger(w, config.LogFormatJSON, level)
}

// NewFormattedLogger is NewLogger with a choice of "json" or "text" records.
func NewFormattedLogger(w io.Writer, format, level string) *slog.Logger {
	return slog.New(newHandler(w, format, &slog.HandlerOptions{Level: parseLogLevel(level)}))
}

func buildLogger(cfg config.LoggingConfig, stdout io.Writer) (*slog.Logger, error) {
	var out io.Writer = stdout

	if output := strings.ToLower(cfg.Output); output == "file" || output == "both" {
		file, err := openLogFile(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		setLogFile(file)

		out = file
		if output == "both" {
			out = io.MultiWriter(stdout, file)
		}
	}

	opts := &slog.HandlerOptions{AddSource: true, Level: parseLogLevel(cfg.Level)}
	return slog.New(newHandler(out, cfg.Format, opts)), nil
}

func newHandler(w io.Writer, format string, opts *slog.HandlerOptions) slog.Handler {
	var h slog.Handler
	if strings.EqualFold(format, config.LogFormatText) {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return &traceHandler{Handler: h}
}

// traceHandler stamps the context's trace ID on each record, and the OTel
// trace ID when a span is active.
type traceHandler struct {
	slog.Handler
}

func (h *traceHandler) Handle(ctx context.Context, r slog.Record) error {
	if traceID := GetTraceID(ctx); traceID != "" {
		r.AddAttrs(slog.String("trace_id", traceID))
	}
	if otelID := TraceIDFromContext(ctx); otelID != "" {
		r.AddAttrs(slog.String("otel_trace_id", otelID))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithGroup(name)}
}

// parseLogLevel maps a configured level name; unknown names mean info
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithTraceID returns ctx carrying traceID
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDContextKey, traceID)
}

// EnsureTraceID returns ctx unchanged when it already has a trace ID and
// otherwise attaches a fresh UUID.
func EnsureTraceID(ctx context.Context) context.Context {
	if GetTraceID(ctx) != "" {
		return ctx
	}
	return WithTraceID(ctx, uuid.NewString())
}

// GetTraceID returns the trace ID carried by ctx, or ""
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	traceID, _ := ctx.Value(TraceIDContextKey).(string)
	return traceID
}

// CloseLogFile closes the log file opened by InitializeLogger, if any.
func CloseLogFile() error {
	logFileMu.Lock()
	defer logFileMu.Unlock()

	if globalLogFile == nil {
		return nil
	}
	err := globalLogFile.Close()
	globalLogFile = nil
	return err
}

// ResetLoggerForTesting lets a test call InitializeLogger again.
func ResetLoggerForTesting() {
	_ = CloseLogFile()
	globalLogger = nil
	globalLoggerOnce = sync.Once{}
}

func setLogFile(f *os.File) {
	logFileMu.Lock()
	defer logFileMu.Unlock()
	globalLogFile = f
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", filepath.Dir(path), err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return file, nil
}
