package middleware

import (
	"net/http"

	"github.com/angelmondragon/storefront/api/responses"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/types"
)

// SessionSource reports the current signed-in session.
type SessionSource interface {
	Current() *types.Session
}

// RequireSession rejects requests while nobody is signed in and seeds the request
// context with the session otherwise.
func RequireSession(sessions SessionSource, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var session *types.Session
			if sessions != nil {
				session = sessions.Current()
			}
			if session == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in required"))
				return
			}

			ctx := WithSession(r.Context(), session)
			if logg != nil {
				ctx = logg.WithUsername(ctx, session.Username)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
