package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/venapictures/studio/internal/api/middleware"
	"github.com/venapictures/studio/internal/api/response"
	"github.com/venapictures/studio/internal/api/validation"
	"github.com/venapictures/studio/internal/auth"
	"github.com/venapictures/studio/internal/entity"
	"github.com/venapictures/studio/internal/workspace"
)

// SessionManager signs users in and out.
type SessionManager interface {
	Login(ctx context.Context, email, password string) (string, *auth.Identity, error)
	Logout(ctx context.Context, token string) error
}

// ShellRegistry opens and forgets per-session workspaces.
type ShellRegistry interface {
	Open(ctx context.Context, session string, user *entity.User) (*workspace.Shell, error)
	Drop(session string)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string            `json:"token"`
	ExpiresAt string            `json:"expiresAt"`
	User      *entity.User      `json:"user"`
	Workspace workspace.Summary `json:"workspace"`
}

// AuthHandler handles login, logout and the current-user endpoint.
type AuthHandler struct {
	sessions SessionManager
	shells   ShellRegistry
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessions SessionManager, shells ShellRegistry) *AuthHandler {
	return &AuthHandler{sessions: sessions, shells: shells}
}

// Login handles POST /api/auth/login. A successful login sets the session
// cookie and loads the workspace; a failed load still signs the user in.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if errs := validation.Login(req.Email, req.Password); len(errs) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", errs, requestID)
		return
	}

	token, identity, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			response.Err(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email atau password salah", requestID)
			return
		}
		slog.Error("login failed", "error", err, "requestId", requestID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed", requestID)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  identity.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	shell, err := h.shells.Open(r.Context(), identity.SessionID, identity.User)
	if err != nil {
		slog.Warn("workspace load failed after login", "error", err, "requestId", requestID)
	}

	resp := loginResponse{
		Token:     token,
		ExpiresAt: identity.ExpiresAt.UTC().Format(time.RFC3339),
		User:      identity.User,
	}
	var notice string
	if shell != nil {
		resp.Workspace = shell.Summarize()
		notice = currentToast(shell)
	}
	response.Notice(w, http.StatusOK, resp, notice, requestID)
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	if err := h.sessions.Logout(r.Context(), middleware.GetToken(r.Context())); err != nil {
		slog.Error("logout failed", "error", err, "requestId", requestID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Logout failed", requestID)
		return
	}
	if identity := middleware.GetIdentity(r.Context()); identity != nil {
		h.shells.Drop(identity.SessionID)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	response.NoContent(w)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Session token is required", requestID)
		return
	}
	response.Success(w, http.StatusOK, identity.User, requestID)
}

// decodeJSON reads a JSON body of at most 1 MiB into dst. It writes the
// error response and returns false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", middleware.GetRequestID(r.Context()))
		return false
	}
	return true
}

func currentToast(shell *workspace.Shell) string {
	if t, ok := shell.Toaster().Current(); ok {
		return t.Message
	}
	return ""
}
