package middleware

import (
	"context"
	"net/http"
	"time"

	"mentorhub/backend/internal/auth"
	"mentorhub/backend/internal/common"
	"mentorhub/backend/internal/constants"
	"mentorhub/backend/internal/logging"
)

type RoleChecker interface {
	HasAnyRole(ctx context.Context, principalID string, roles ...constants.Role) (bool, error)
}

// RequireAnyRole lets the request through when the principal holds at least one of roles.
// Must run after AuthMiddleware.
func RequireAnyRole(checker RoleChecker, roles ...constants.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			principalID := auth.PrincipalID(r.Context())
			if principalID == "" {
				common.RespondErrorCode(w, start, constants.ErrCodeAuthenticationRequired,
					constants.GetErrorMessage(constants.ErrCodeAuthenticationRequired), http.StatusUnauthorized)
				return
			}

			ok, err := checker.HasAnyRole(r.Context(), principalID, roles...)
			if err != nil {
				logging.Error("Role check failed", "principal_id", principalID, "error", err)
				common.RespondErrorCode(w, start, constants.ErrCodeStoreUnavailable,
					constants.GetErrorMessage(constants.ErrCodeStoreUnavailable), http.StatusServiceUnavailable)
				return
			}
			if !ok {
				common.RespondErrorCode(w, start, constants.ErrCodeAuthorizationDenied,
					constants.GetErrorMessage(constants.ErrCodeAuthorizationDenied), http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
