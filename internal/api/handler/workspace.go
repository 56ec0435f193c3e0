package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/venapictures/studio/internal/api/middleware"
	"github.com/venapictures/studio/internal/api/response"
	"github.com/venapictures/studio/internal/api/validation"
	"github.com/venapictures/studio/internal/auth"
	"github.com/venapictures/studio/internal/store"
	"github.com/venapictures/studio/internal/workspace"
)

// WorkspaceHandler serves the session shell: summary, views, navigation,
// search, the studio profile and notifications.
type WorkspaceHandler struct {
	authn middleware.Authenticator
}

// NewWorkspaceHandler creates a new WorkspaceHandler. authn is used by the
// route resolver, which also answers signed-out callers.
func NewWorkspaceHandler(authn middleware.Authenticator) *WorkspaceHandler {
	return &WorkspaceHandler{authn: authn}
}

// Summary handles GET /api/workspace.
func (h *WorkspaceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	shell := middleware.GetShell(r.Context())
	response.Notice(w, http.StatusOK, shell.Summarize(), currentToast(shell), middleware.GetRequestID(r.Context()))
}

// Refresh handles POST /api/workspace/refresh by loading every collection
// again.
func (h *WorkspaceHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	shell := middleware.GetShell(r.Context())

	if err := shell.Load(r.Context()); err != nil {
		slog.Error("workspace refresh failed", "error", err, "requestId", requestID)
		response.ErrNotice(w, http.StatusServiceUnavailable, "WORKSPACE_UNAVAILABLE",
			"Workspace could not be loaded", nil, currentToast(shell), requestID)
		return
	}
	response.Notice(w, http.StatusOK, shell.Summarize(), currentToast(shell), requestID)
}

// View handles GET /api/views/{view}. A view the user may not open renders
// as the access-denied screen with status 200.
func (h *WorkspaceHandler) View(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	view, ok := workspace.ParseView(chi.URLParam(r, "view"))
	if !ok {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "View not found", requestID)
		return
	}
	response.Success(w, http.StatusOK, middleware.GetShell(r.Context()).Render(view), requestID)
}

type navigateRequest struct {
	View           string `json:"view"`
	NotificationID string `json:"notificationId"`
}

// Navigate handles POST /api/navigate.
func (h *WorkspaceHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req navigateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	view, ok := workspace.ParseView(req.View)
	if !ok {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed",
			[]validation.FieldError{{Field: "view", Message: "view is not a known screen"}}, requestID)
		return
	}

	shell := middleware.GetShell(r.Context())
	screen, err := shell.Navigate(r.Context(), view, req.NotificationID)
	if err != nil {
		slog.Warn("marking notification read failed", "error", err, "requestId", requestID)
	}
	response.Notice(w, http.StatusOK, screen, currentToast(shell), requestID)
}

// Route handles GET /api/route?hash=. It is public; a valid session token
// only changes where the fallthrough lands.
func (h *WorkspaceHandler) Route(w http.ResponseWriter, r *http.Request) {
	authenticated := false
	if token := middleware.Token(r); token != "" && h.authn != nil {
		if _, err := h.authn.Authenticate(r.Context(), token); err == nil {
			authenticated = true
		} else if !errors.Is(err, auth.ErrInvalidSession) {
			slog.Warn("route session check failed", "error", err)
		}
	}
	response.Success(w, http.StatusOK, workspace.ResolveRoute(r.URL.Query().Get("hash"), authenticated),
		middleware.GetRequestID(r.Context()))
}

// Search handles GET /api/search?q=.
func (h *WorkspaceHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	response.Success(w, http.StatusOK, middleware.GetShell(r.Context()).Search(term), middleware.GetRequestID(r.Context()))
}

// GetProfile handles GET /api/profile. Data is null until a profile exists.
func (h *WorkspaceHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, middleware.GetShell(r.Context()).Profile(), middleware.GetRequestID(r.Context()))
}

// UpdateProfile handles PUT /api/profile.
func (h *WorkspaceHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var raw map[string]json.RawMessage
	if !decodeJSON(w, r, &raw) {
		return
	}
	delete(raw, "id")
	patch, err := store.Profiles.DecodePatch(raw)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), requestID)
		return
	}

	shell := middleware.GetShell(r.Context())
	profile, err := shell.UpdateProfile(r.Context(), patch)
	if err != nil {
		writeStoreError(w, err, "profile", currentToast(shell), requestID)
		return
	}
	response.Notice(w, http.StatusOK, profile, currentToast(shell), requestID)
}

// MarkRead handles POST /api/notifications/{id}/read.
func (h *WorkspaceHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	shell := middleware.GetShell(r.Context())
	id := chi.URLParam(r, "id")

	if err := shell.MarkRead(r.Context(), id); err != nil {
		writeStoreError(w, err, "notification", "", requestID)
		return
	}
	n, _ := shell.Notifications.Get(id)
	response.Success(w, http.StatusOK, n, requestID)
}

type readAllResponse struct {
	Updated int `json:"updated"`
}

// MarkAllRead handles POST /api/notifications/read-all.
func (h *WorkspaceHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	n, err := middleware.GetShell(r.Context()).MarkAllRead(r.Context())
	if err != nil {
		writeStoreError(w, err, "notification", "", requestID)
		return
	}
	response.Success(w, http.StatusOK, readAllResponse{Updated: n}, requestID)
}

type signRequest struct {
	Signature string `json:"signature"`
}

// Sign handles POST /api/sign/{kind}/{id}, storing the studio's signature on
// a contract, invoice, receipt or payment record.
func (h *WorkspaceHandler) Sign(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req signRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Signature) == "" {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed",
			[]validation.FieldError{{Field: "signature", Message: "signature is required"}}, requestID)
		return
	}

	shell := middleware.GetShell(r.Context())
	err := shell.Sign(r.Context(), chi.URLParam(r, "kind"), chi.URLParam(r, "id"), req.Signature)
	if err != nil {
		if errors.Is(err, workspace.ErrUnknownDocument) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Document kind not found", requestID)
			return
		}
		writeStoreError(w, err, "document", currentToast(shell), requestID)
		return
	}
	response.Notice(w, http.StatusOK, nil, currentToast(shell), requestID)
}

// writeStoreError maps store sentinels to HTTP status codes.
func writeStoreError(w http.ResponseWriter, err error, what, notice, requestID string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		response.ErrNotice(w, http.StatusNotFound, "NOT_FOUND", strings.ToUpper(what[:1])+what[1:]+" not found", nil, notice, requestID)
	case errors.Is(err, store.ErrDuplicate):
		response.ErrNotice(w, http.StatusConflict, "DUPLICATE", err.Error(), nil, notice, requestID)
	case errors.Is(err, store.ErrUnknownField):
		response.ErrNotice(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil, notice, requestID)
	default:
		slog.Error("store call failed", "what", what, "error", err, "requestId", requestID)
		response.ErrNotice(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save "+what, nil, notice, requestID)
	}
}
