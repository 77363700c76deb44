package tilewave

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with tilewave-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithArea adds the world offset of the distribution area.
func (l *Logger) WithArea(x, y int) *Logger {
	return &Logger{
		Logger: l.Logger.With("area_x", x, "area_y", y),
	}
}

// WithRegion adds a region index field (useful for parallel generation).
func (l *Logger) WithRegion(index int) *Logger {
	return &Logger{
		Logger: l.Logger.With("region", index),
	}
}

// LogSelectCollapseArea logs the setup of a collapse window.
func (l *Logger) LogSelectCollapseArea(u, v, width, height, pending int, duration time.Duration, err error) {
	if err != nil {
		l.Error("select collapse area failed",
			"u", u, "v", v,
			"width", width, "height", height,
			"error", err,
		)
	} else {
		l.Debug("collapse area selected",
			"u", u, "v", v,
			"width", width, "height", height,
			"pending", pending,
			"duration", duration,
		)
	}
}

// LogCollapse logs a CollapseTiles call.
func (l *Logger) LogCollapse(requested, collapsed, remaining int, err error) {
	if err != nil {
		l.Warn("collapse aborted",
			"requested", requested,
			"collapsed", collapsed,
			"remaining", remaining,
			"error", err,
		)
	} else {
		l.Debug("collapse completed",
			"requested", requested,
			"collapsed", collapsed,
			"remaining", remaining,
		)
	}
}

// LogContradiction logs a cell that ran out of candidates.
func (l *Logger) LogContradiction(x, y int, cause error) {
	l.Warn("contradiction",
		"x", x, "y", y,
		"cause", cause,
	)
}

// LogGenerate logs the outcome of a Generate call.
func (l *Logger) LogGenerate(ctx context.Context, regions, tiles int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "generate failed",
			"regions", regions,
			"tiles", tiles,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "generate completed",
			"regions", regions,
			"tiles", tiles,
			"duration", duration,
		)
	}
}
