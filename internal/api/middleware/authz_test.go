package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/venapictures/studio/internal/api/middleware"
	"github.com/venapictures/studio/internal/auth"
	"github.com/venapictures/studio/internal/entity"
	"github.com/venapictures/studio/internal/workspace"
)

func requestAs(user *entity.User) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if user == nil {
		return req
	}
	ctx := middleware.WithSession(context.Background(), &auth.Identity{User: user}, shellFor(user))
	return req.WithContext(ctx)
}

func TestRequireView(t *testing.T) {
	member := &entity.User{ID: "u2", Role: "Member", Permissions: []string{"Klien", "Aset"}}

	tests := []struct {
		name   string
		user   *entity.User
		view   workspace.View
		status int
	}{
		{"admin opens anything", admin, workspace.ViewSQLEditor, http.StatusOK},
		{"member with permission", member, workspace.ViewClients, http.StatusOK},
		{"member without permission", member, workspace.ViewFinance, http.StatusForbidden},
		{"dashboard is always open", member, workspace.ViewDashboard, http.StatusOK},
		{"no identity", nil, workspace.ViewClients, http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := middleware.RequireView(tc.view)(okHandler())
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, requestAs(tc.user))

			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestRequireView_ForbiddenBody(t *testing.T) {
	member := &entity.User{ID: "u2", Role: "Member"}
	handler := middleware.RequireView(workspace.ViewFinance)(okHandler())
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, requestAs(member))

	code, _ := errorBody(t, w)
	assert.Equal(t, "FORBIDDEN", code)
	assert.Contains(t, w.Body.String(), workspace.AccessDenied)
	assert.Contains(t, w.Body.String(), `"view":"Keuangan"`)
}
