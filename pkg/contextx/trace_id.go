package contextx

import (
	"context"
	"fmt"

	"github.com/rs/xid"

	"deal_analyzer/pkg/logx"
)

// TraceID correlates every log line of one analysis run.
type TraceID string

type contextKeyTraceID struct{}

func NewTraceID() TraceID {
	return TraceID(xid.New().String())
}

func (t TraceID) String() string {
	return string(t)
}

func WithTraceID(ctx context.Context, traceID TraceID) context.Context {
	return context.WithValue(ctx, contextKeyTraceID{}, traceID)
}

func TraceIDFromContext(ctx context.Context) (TraceID, error) {
	traceID, ok := ctx.Value(contextKeyTraceID{}).(TraceID)
	if !ok {
		return "", fmt.Errorf("trace id: %w", ErrNoValue)
	}

	return traceID, nil
}

// StartTrace stores a fresh trace id in ctx and tags the context logger with it.
func StartTrace(ctx context.Context) (context.Context, TraceID) {
	traceID := NewTraceID()

	ctx = WithTraceID(ctx, traceID)
	ctx = WithLogger(ctx, LoggerFromContextOrDefault(ctx).With(logx.FieldTraceID, traceID.String()))

	return ctx, traceID
}
