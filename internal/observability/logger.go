// Package observability holds the logging and metrics plumbing shared by
// the request client, the service façades, and the notification engine.
package observability

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type operationKey struct{}

// Operation identifies one façade call for audit logging.
type Operation struct {
	Endpoint string
	Name     string
}

func NewLogger(level string) (*zap.Logger, error) {
	parsedLevel, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsedLevel)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true

	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger, nil
}

func parseLevel(level string) (zapcore.Level, error) {
	var parsed zapcore.Level
	normalized := strings.ToLower(strings.TrimSpace(level))
	if normalized == "" {
		normalized = "info"
	}

	if err := parsed.UnmarshalText([]byte(normalized)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return parsed, nil
}

// WithOperation tags the context with the façade operation in flight so
// transport-level logs can be traced back to the triggering call.
func WithOperation(ctx context.Context, endpoint, name string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, operationKey{}, Operation{Endpoint: endpoint, Name: name})
}

func OperationFromContext(ctx context.Context) (Operation, bool) {
	if ctx == nil {
		return Operation{}, false
	}

	op, ok := ctx.Value(operationKey{}).(Operation)
	if !ok || op.Name == "" {
		return Operation{}, false
	}

	return op, true
}

// WithContextLogger binds the in-flight operation fields onto the logger
// when the context carries one.
func WithContextLogger(logger *zap.Logger, ctx context.Context) *zap.Logger {
	if logger == nil {
		return nil
	}

	op, ok := OperationFromContext(ctx)
	if !ok {
		return logger
	}

	return logger.With(
		zap.String("endpoint", op.Endpoint),
		zap.String("operation", op.Name),
	)
}
