package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey    contextKey = "logger"
	requestIDKey contextKey = "request_id"
	centerIDKey  contextKey = "center_id"
)

// WithContext returns a new context carrying l
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger stored in ctx, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// WithRequestID stores the request ID in ctx
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithCenterID stores the center scope of the request in ctx
func WithCenterID(ctx context.Context, centerID string) context.Context {
	return context.WithValue(ctx, centerIDKey, centerID)
}

// RequestID returns the request ID stored in ctx
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// CenterID returns the center ID stored in ctx
func CenterID(ctx context.Context) string {
	id, _ := ctx.Value(centerIDKey).(string)
	return id
}

// TraceFields returns trace_id/span_id fields for the active span, if any.
func TraceFields(ctx context.Context) []zap.Field {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	}
}

// L returns the context logger (or base when ctx has none) enriched with
// trace, request and center fields.
//
//	logger.L(ctx, s.logger).Info("payment processed", zap.String("payment_id", id))
func L(ctx context.Context, base ...*zap.Logger) *zap.Logger {
	l, ok := ctx.Value(loggerKey).(*zap.Logger)
	if !ok {
		if len(base) > 0 && base[0] != nil {
			l = base[0]
		} else {
			return zap.NewNop()
		}
	}

	fields := TraceFields(ctx)
	// The gin middleware already binds request/center fields to the stored logger.
	if !ok {
		if id := RequestID(ctx); id != "" {
			fields = append(fields, zap.String("request_id", id))
		}
		if id := CenterID(ctx); id != "" {
			fields = append(fields, zap.String("center_id", id))
		}
	}
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}
