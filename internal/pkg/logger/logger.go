// Package logger carries a request-scoped zap logger through context.
package logger

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// AddFields attaches fields to the context logger and returns the new context.
func AddFields(ctx context.Context, fields ...zap.Field) context.Context {
	l := ctxzap.Extract(ctx)
	return ctxzap.ToContext(ctx, l.With(fields...))
}

// WithAction tags the context logger with an "action" field describing
// the operation being handled.
func WithAction(ctx context.Context, action string) context.Context {
	return AddFields(ctx, zap.String("action", action))
}

// WithSession tags the context logger with the conversation session id.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return AddFields(ctx, zap.String("session_id", sessionID))
}
