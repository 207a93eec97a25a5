package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/Proximyst/typewriters/pkg/domain/types"
)

type ctxRequestIDKey struct{}

// CtxRequestID returns the request ID of an HTTP request handled by the server. When ctx has
// none, a new one is generated and stored in the returned context.
func CtxRequestID(ctx context.Context) (types.RequestID, context.Context) {
	if id, ok := ctx.Value(ctxRequestIDKey{}).(types.RequestID); ok {
		return id, ctx
	}

	newID := types.NewRequestID()
	return newID, context.WithValue(ctx, ctxRequestIDKey{}, newID)
}

type ctxLoggerKey struct{}

// With returns a new context with logger
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From returns logger from context. If logger is not set, return default logger
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok {
		return l
	}
	return defaultLogger
}

type ctxTimeKey struct{}

// TimeFunc is the clock stamped on detected updates (UpdateEvent.DetectedAt).
type TimeFunc func() time.Time

// CtxTime is the detection time of an update polled with ctx. Tests pin it with CtxWithTime;
// otherwise it is the wall clock.
func CtxTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ctxTimeKey{}).(TimeFunc); ok {
		return t()
	}
	return time.Now()
}

// CtxWithTime fixes the clock used by CtxTime for everything polled under the returned context.
func CtxWithTime(ctx context.Context, timeFunc TimeFunc) context.Context {
	return context.WithValue(ctx, ctxTimeKey{}, timeFunc)
}
