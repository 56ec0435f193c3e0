package middleware

import (
	"net/http"

	"github.com/venapictures/studio/internal/api/response"
	"github.com/venapictures/studio/internal/workspace"
)

// RequireView rejects users who may not open view with 403.
func RequireView(view workspace.View) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestID(r.Context())

			identity := GetIdentity(r.Context())
			if identity == nil {
				response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Session token is required", requestID)
				return
			}

			if !workspace.HasPermission(identity.User, view) {
				response.ErrWithDetails(w, http.StatusForbidden, "FORBIDDEN", workspace.AccessDenied,
					map[string]string{"view": string(view)}, requestID)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
