package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/venapictures/studio/internal/api/response"
	"github.com/venapictures/studio/internal/auth"
	"github.com/venapictures/studio/internal/entity"
	"github.com/venapictures/studio/internal/workspace"
)

// SessionCookie is the cookie the login endpoint sets.
const SessionCookie = "vena_session"

const (
	identityKey contextKey = "identity"
	shellKey    contextKey = "shell"
	tokenKey    contextKey = "token"
)

// Authenticator resolves a raw session token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Identity, error)
}

// Shells opens the workspace of a session and forgets it once the session
// is gone.
type Shells interface {
	Open(ctx context.Context, session string, user *entity.User) (*workspace.Shell, error)
	Drop(session string)
}

// Token extracts the session token from the Authorization bearer header or
// the session cookie.
func Token(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if tok, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(tok)
		}
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// Auth resolves the session token to an Identity and opens the session's
// workspace. Missing or invalid sessions get 401 and their workspace is
// dropped; a workspace whose load failed gets 503 with the load toast.
func Auth(authn Authenticator, shells Shells) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestID(r.Context())

			token := Token(r)
			if token == "" {
				response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Session token is required", requestID)
				return
			}

			identity, err := authn.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, auth.ErrInvalidSession) {
					shells.Drop(auth.SessionKey(token))
					response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired session", requestID)
					return
				}
				slog.Error("authentication failed", "error", err, "requestId", requestID)
				response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Authentication failed", requestID)
				return
			}

			shell, err := shells.Open(r.Context(), identity.SessionID, identity.User)
			if err != nil {
				slog.Error("workspace load failed", "error", err, "requestId", requestID)
				response.ErrNotice(w, http.StatusServiceUnavailable, "WORKSPACE_UNAVAILABLE",
					"Workspace could not be loaded", nil, workspace.LoadFailedMessage, requestID)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			ctx = context.WithValue(ctx, shellKey, shell)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity retrieves the authenticated Identity from the request context.
func GetIdentity(ctx context.Context) *auth.Identity {
	id, _ := ctx.Value(identityKey).(*auth.Identity)
	return id
}

// GetShell retrieves the session workspace from the request context.
func GetShell(ctx context.Context) *workspace.Shell {
	sh, _ := ctx.Value(shellKey).(*workspace.Shell)
	return sh
}

// GetToken retrieves the raw session token from the request context.
func GetToken(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey).(string)
	return tok
}

// WithSession returns ctx carrying identity and shell, as Auth would set them.
func WithSession(ctx context.Context, identity *auth.Identity, shell *workspace.Shell) context.Context {
	ctx = context.WithValue(ctx, identityKey, identity)
	return context.WithValue(ctx, shellKey, shell)
}
