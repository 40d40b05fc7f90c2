package ndimage

import (
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/hupe1980/ndimage/container"
	"github.com/hupe1980/ndimage/datatype"
)

// Logger wraps slog.Logger with ndimage-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithDataType adds a data type field to the logger.
func (l *Logger) WithDataType(dt datatype.DataType) *Logger {
	return &Logger{
		Logger: l.Logger.With("datatype", dt.Name()),
	}
}

// WithSizes adds a sizes field to the logger.
func (l *Logger) WithSizes(sizes []int) *Logger {
	arr := container.FromSlice(sizes)
	return &Logger{
		Logger: l.Logger.With("sizes", arr.String()),
	}
}

// LogForge logs a forge attempt.
func (l *Logger) LogForge(sizes []int, dt datatype.DataType, bytes int, err error) {
	if err != nil {
		l.Warn("forge failed",
			"sizes", sizes,
			"datatype", dt.Name(),
			"bytes", humanize.IBytes(uint64(max(bytes, 0))),
			"error", err,
		)
		return
	}
	l.Debug("image forged",
		"sizes", sizes,
		"datatype", dt.Name(),
		"bytes", humanize.IBytes(uint64(bytes)),
	)
}

// LogRelease logs the release of a data block.
func (l *Logger) LogRelease(bytes int, err error) {
	if err != nil {
		l.Error("data block release failed",
			"bytes", humanize.IBytes(uint64(bytes)),
			"error", err,
		)
		return
	}
	l.Debug("data block released",
		"bytes", humanize.IBytes(uint64(bytes)),
	)
}

// LogView logs the creation of a view.
func (l *Logger) LogView(kind string, shareCount int) {
	l.Debug("view created",
		"kind", kind,
		"shared_among", shareCount,
	)
}
