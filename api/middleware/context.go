package middleware

import (
	"context"

	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
)

type contextKey string

const (
	ctxUserID    contextKey = "user_id"
	ctxRole      contextKey = "actor_role"
	ctxSessionID contextKey = "session_id"
	ctxSession   contextKey = "session"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

// SessionFromContext returns the workspace session resolved by Auth.
func SessionFromContext(ctx context.Context) *workspace.Session {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxSession).(*workspace.Session); ok {
		return v
	}
	return nil
}

// WithSession injects the session and its identity fields into the context.
func WithSession(ctx context.Context, sess *workspace.Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if sess == nil {
		return ctx
	}
	ctx = context.WithValue(ctx, ctxSession, sess)
	ctx = context.WithValue(ctx, ctxSessionID, sess.ID)
	ctx = context.WithValue(ctx, ctxUserID, sess.User.ID.String())
	return context.WithValue(ctx, ctxRole, string(sess.User.Role))
}
