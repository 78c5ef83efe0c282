package fontc

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while glyphs are composited on other goroutines.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for fontc and its sub-packages.
// By default fontc produces no log output. Pass nil to restore the
// silent default.
//
// Log levels used by fontc:
//   - [slog.LevelDebug]: per-compile diagnostics (glyph counts, padding, atlas occupancy)
//   - [slog.LevelInfo]: files written by the command line tool
//   - [slog.LevelWarn]: glyphs the rasterizer could not load
//
// Example:
//
//	fontc.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Sub-packages (text, fontinfo, output)
// call this to share the same configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
