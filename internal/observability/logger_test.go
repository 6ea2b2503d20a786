package observability

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_LevelMapping(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		level        string
		debugEnabled bool
	}{
		{name: "debug level", level: "debug", debugEnabled: true},
		{name: "info level", level: "info", debugEnabled: false},
		{name: "empty level defaults to info", level: "", debugEnabled: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			logger, err := NewLogger(tc.level)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if logger == nil {
				t.Fatal("logger should not be nil")
			}

			if got := logger.Core().Enabled(zapcore.DebugLevel); got != tc.debugEnabled {
				t.Fatalf("debug enabled=%v, want=%v", got, tc.debugEnabled)
			}
		})
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	t.Parallel()

	logger, err := NewLogger("not-a-level")
	if err == nil {
		t.Fatal("expected error for invalid level")
	}
	if logger != nil {
		t.Fatal("expected nil logger for invalid level")
	}
}

func TestOperation_ContextHelpers(t *testing.T) {
	t.Parallel()

	ctx := WithOperation(context.Background(), "donations", "getAll")
	op, ok := OperationFromContext(ctx)
	if !ok {
		t.Fatal("expected operation to exist")
	}
	if op.Endpoint != "donations" || op.Name != "getAll" {
		t.Fatalf("operation=%+v, want donations/getAll", op)
	}
}

func TestOperation_MissingValue(t *testing.T) {
	t.Parallel()

	_, ok := OperationFromContext(context.Background())
	if ok {
		t.Fatal("expected operation to be missing")
	}
}

func TestWithContextLogger(t *testing.T) {
	t.Parallel()

	core, recorded := observer.New(zapcore.InfoLevel)
	baseLogger := zap.New(core)

	ctx := WithOperation(context.Background(), "tasks", "search")
	loggerWithContext := WithContextLogger(baseLogger, ctx)
	loggerWithContext.Info("message with operation")

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("entries=%d, want=1", len(entries))
	}

	fields := entries[0].ContextMap()
	if got := fields["endpoint"]; got != "tasks" {
		t.Fatalf("endpoint=%v, want=%q", got, "tasks")
	}
	if got := fields["operation"]; got != "search" {
		t.Fatalf("operation=%v, want=%q", got, "search")
	}
}

func TestWithContextLogger_NoOperation(t *testing.T) {
	t.Parallel()

	core, recorded := observer.New(zapcore.InfoLevel)
	baseLogger := zap.New(core)

	loggerWithContext := WithContextLogger(baseLogger, context.Background())
	loggerWithContext.Info("message without operation")

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("entries=%d, want=1", len(entries))
	}

	if _, ok := entries[0].ContextMap()["operation"]; ok {
		t.Fatal("expected operation field to be absent")
	}
}

func TestWithContextLogger_NilLogger(t *testing.T) {
	t.Parallel()

	if got := WithContextLogger(nil, context.Background()); got != nil {
		t.Fatal("expected nil logger")
	}
}
