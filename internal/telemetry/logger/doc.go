// Package logger provides structured logging for synckit.
//
// New builds a Logger on top of log/slog, emitting JSON or text per
// Config. All loggers share one slog.LevelVar, so SetLevel retunes
// every logger already handed out, which is what the config hot
// reload relies on.
//
// The context helpers carry a logger and a request ID through call
// chains: the diagnostics middleware binds both into the request
// context, and L(ctx) recovers a logger that tags every line with the
// request ID. Code that has no logger wired in falls back to Default.
//
// @req RQ-0403
// @design DS-0402
package logger
