// Package rlog is the ambient logging surface shared by the builder, pass
// manager and compiler driver: a thin layer over log/slog, in the same
// style as zeonica's core package (a custom level above Info, plain
// key-value Warn/Info calls), plus a per-compile xid for correlating a
// whole compile→reset lifecycle across log lines.
package rlog

import (
	"context"
	"log/slog"

	"github.com/rs/xid"
)

// LevelTrace sits above Info: per-tick/per-node detail too noisy for normal
// operation but useful when diagnosing a specific circuit, mirroring
// zeonica's core.LevelTrace.
const LevelTrace slog.Level = slog.LevelInfo + 1

// Trace logs at LevelTrace using the default logger.
func Trace(msg string, args ...any) {
	slog.Default().Log(context.Background(), LevelTrace, msg, args...)
}

// Session is a compile-session identifier, attached to every log line for
// the lifetime of one compile→reset cycle so multiple recompiles in the
// same process don't interleave unreadably.
type Session struct {
	id xid.ID
}

// NewSession mints a fresh session id.
func NewSession() Session { return Session{id: xid.New()} }

// String returns the session's short correlation id.
func (s Session) String() string { return s.id.String() }

// Infof logs at Info level tagged with this session's id.
func (s Session) Infof(msg string, args ...any) {
	slog.Info(msg, append([]any{"session", s.id.String()}, args...)...)
}

// Warnf logs at Warn level tagged with this session's id.
func (s Session) Warnf(msg string, args ...any) {
	slog.Warn(msg, append([]any{"session", s.id.String()}, args...)...)
}

// Tracef logs at LevelTrace tagged with this session's id.
func (s Session) Tracef(msg string, args ...any) {
	slog.Default().Log(context.Background(), LevelTrace, msg, append([]any{"session", s.id.String()}, args...)...)
}
