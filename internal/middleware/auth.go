package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"mentorhub/backend/internal/auth"
	"mentorhub/backend/internal/common"
	"mentorhub/backend/internal/constants"
	"mentorhub/backend/internal/services"
)

// SessionResolver turns a bearer token into the principal behind a live session
type SessionResolver interface {
	CurrentPrincipal(token string) (*services.Session, error)
}

func AuthMiddleware(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				common.RespondErrorCode(w, start, constants.ErrCodeAuthenticationRequired,
					"Unauthorized. Missing bearer token", http.StatusUnauthorized)
				return
			}

			session, err := resolver.CurrentPrincipal(strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")))
			if err != nil {
				common.RespondErrorCode(w, start, constants.ErrCodeAuthenticationRequired,
					"Unauthorized. Invalid or expired session", http.StatusUnauthorized)
				return
			}

			recordPrincipal(r.Context(), session.PrincipalID)
			ctx := auth.SetPrincipal(r.Context(), session.PrincipalID, session.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// principalRecorder carries the authenticated principal back up to the outer request logger
type principalRecorder struct {
	id string
}

type recorderKey struct{}

func withPrincipalRecorder(ctx context.Context, rec *principalRecorder) context.Context {
	return context.WithValue(ctx, recorderKey{}, rec)
}

func recordPrincipal(ctx context.Context, principalID string) {
	if rec, ok := ctx.Value(recorderKey{}).(*principalRecorder); ok {
		rec.id = principalID
	}
}
