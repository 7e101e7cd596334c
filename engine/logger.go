package engine

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record; Enabled is false so callers skip formatting
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger replaces the package logger; nil restores the silent default
// Safe for concurrent use
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the package logger
// Grid and lookup diagnostics are emitted at debug level
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
