package gridbox

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNopHandler_Enabled(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
}

func TestNopHandler_Handle(t *testing.T) {
	h := nopHandler{}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("nopHandler.Handle() = %v, want nil", err)
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	// Default logger must be disabled at all levels.
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	SetLogger(custom)

	got := Logger()
	if got != custom {
		t.Error("Logger() did not return the custom logger set via SetLogger")
	}

	// Verify output is captured.
	got.Info("test message", "key", "value")
	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("expected log output to contain 'test message', got: %s", buf.String())
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)

	l := Logger()
	if l == nil {
		t.Fatal("SetLogger(nil) should set nop logger, not nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should produce a disabled logger")
	}
}

// loggingAllocator records the logger it receives.
type loggingAllocator struct {
	SoftwareAllocator
	logger *slog.Logger
}

func (a *loggingAllocator) Name() string             { return "logging-test" }
func (a *loggingAllocator) SetLogger(l *slog.Logger) { a.logger = l }

func TestSetLoggerPropagatesToAllocator(t *testing.T) {
	orig := Logger()
	origAlloc := ActiveAllocator()
	t.Cleanup(func() {
		SetLogger(orig)
		RegisterBufferAllocator(origAlloc)
	})

	mock := &loggingAllocator{}
	RegisterBufferAllocator(mock)

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	SetLogger(custom)

	if mock.logger != custom {
		t.Error("SetLogger did not propagate to allocator via loggerSetter")
	}
}

func TestRegisterAllocatorPropagatesCurrentLogger(t *testing.T) {
	orig := Logger()
	origAlloc := ActiveAllocator()
	t.Cleanup(func() {
		SetLogger(orig)
		RegisterBufferAllocator(origAlloc)
	})

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	SetLogger(custom)

	mock := &loggingAllocator{}
	RegisterBufferAllocator(mock)

	if mock.logger != custom {
		t.Error("RegisterBufferAllocator did not hand the current logger to the allocator")
	}
}
