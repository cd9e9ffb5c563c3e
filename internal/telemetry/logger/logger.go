// Package logger provides structured logging for synckit.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Logger is the logging interface the rest of the codebase depends on.
// Implementations must be safe for concurrent use.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// With returns a Logger that adds the given key/value pairs to
	// every record.
	With(args ...any) Logger

	// WithContext returns a Logger whose records carry ctx, for
	// handlers that extract request-scoped values from it.
	WithContext(ctx context.Context) Logger
}

// Config selects the output shape of a new Logger.
type Config struct {
	// Level names the minimum level: debug, info, warn or error.
	// Unknown names select info.
	Level string

	// Format selects the handler: "text" (or "console") for
	// human-readable output, anything else for JSON.
	Format string

	// Output receives the log stream. Nil means os.Stderr.
	Output io.Writer

	// AddSource annotates each record with its call site.
	AddSource bool
}

// DefaultConfig is JSON to stderr at info level.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json", Output: os.Stderr}
}

// levelVar backs every Logger built by New, so SetLevel adjusts them
// all at once.
var levelVar = new(slog.LevelVar)

var levelNames = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

func parseLevel(name string) slog.Level {
	if lvl, ok := levelNames[strings.ToLower(name)]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// SetLevel adjusts the level of every Logger built by New. Config
// reloads use this to change verbosity without rebuilding loggers.
func SetLevel(level string) {
	levelVar.Set(parseLevel(level))
}

// GetLevel reports the currently active level name.
func GetLevel() string {
	return strings.ToLower(levelVar.Level().String())
}

// New builds a Logger from cfg. The returned logger shares the global
// level, so a later SetLevel call affects it too.
func New(cfg Config) (Logger, error) {
	levelVar.Set(parseLevel(cfg.Level))

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: levelVar, AddSource: cfg.AddSource}

	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "text", "console":
		h = slog.NewTextHandler(out, opts)
	default:
		h = slog.NewJSONHandler(out, opts)
	}

	return &slogAdapter{sl: slog.New(h), ctx: context.Background()}, nil
}

// slogAdapter implements Logger on a *slog.Logger plus a pinned
// context for the *Context emit variants.
type slogAdapter struct {
	sl  *slog.Logger
	ctx context.Context
}

func (a *slogAdapter) Debug(msg string, args ...any) { a.sl.DebugContext(a.ctx, msg, args...) }
func (a *slogAdapter) Info(msg string, args ...any)  { a.sl.InfoContext(a.ctx, msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.sl.WarnContext(a.ctx, msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.sl.ErrorContext(a.ctx, msg, args...) }

func (a *slogAdapter) With(args ...any) Logger {
	return &slogAdapter{sl: a.sl.With(args...), ctx: a.ctx}
}

func (a *slogAdapter) WithContext(ctx context.Context) Logger {
	return &slogAdapter{sl: a.sl, ctx: ctx}
}

// defaultLogger is what Default returns before SetDefault runs.
var defaultLogger atomic.Pointer[Logger]

func init() {
	l, _ := New(DefaultConfig())
	defaultLogger.Store(&l)
}

// SetDefault installs l as the process-wide logger returned by Default.
func SetDefault(l Logger) {
	defaultLogger.Store(&l)
}

// Default returns the process-wide logger.
func Default() Logger {
	return *defaultLogger.Load()
}
