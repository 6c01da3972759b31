package middleware

import (
	"context"

	"github.com/angelmondragon/storefront/pkg/types"
)

type contextKey string

const ctxSession contextKey = "session"

// SessionFromContext returns the session stored by RequireSession, or nil.
func SessionFromContext(ctx context.Context) *types.Session {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxSession).(*types.Session); ok {
		return v
	}
	return nil
}

// WithSession injects the signed-in session into the context.
func WithSession(ctx context.Context, session *types.Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSession, session)
}
