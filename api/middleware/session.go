package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/junavolabs/junavo-backend/pkg/logger"
)

const sessionIDHeader = "X-Session-Id"

// StorefrontSession resolves the anonymous session identifier. A missing or
// malformed header gets a fresh id, echoed back so the client can persist it.
func StorefrontSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(sessionIDHeader)
			if _, err := uuid.Parse(sessionID); err != nil {
				sessionID = uuid.NewString()
			}

			w.Header().Set(sessionIDHeader, sessionID)

			ctx := context.WithValue(r.Context(), ctxSessionID, sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
