package gridbox

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for gridbox and its sub-packages.
// By default, gridbox produces no log output. Call SetLogger to enable it.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by gridbox:
//   - [slog.LevelDebug]: internal diagnostics (buffer sizes, slab loads)
//   - [slog.LevelInfo]: lifecycle events (allocator registered)
//   - [slog.LevelWarn]: non-fatal issues (async transfer errors)
//
// Example:
//
//	// Enable info-level logging to stderr:
//	gridbox.SetLogger(slog.Default())
//
//	// Enable debug-level logging for full diagnostics:
//	gridbox.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	// Propagate to the active allocator if it accepts a logger.
	if ls, ok := ActiveAllocator().(loggerSetter); ok {
		ls.SetLogger(l)
	}
}

// Logger returns the current logger used by gridbox.
// Sub-packages (device/, backend/wgpu/) call this to share the same
// logger configuration without introducing import cycles.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by allocators that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}
