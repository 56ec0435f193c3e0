package workspace_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venapictures/studio/internal/entity"
	"github.com/venapictures/studio/internal/store"
	"github.com/venapictures/studio/internal/workspace"
)

func TestHasPermission(t *testing.T) {
	member := &entity.User{Role: "Member", Permissions: []string{"Klien", "Aset"}}

	tests := []struct {
		name string
		user *entity.User
		view workspace.View
		want bool
	}{
		{"no user", nil, workspace.ViewDashboard, false},
		{"admin anything", admin, workspace.ViewSQLEditor, true},
		{"dashboard for everyone", member, workspace.ViewDashboard, true},
		{"listed view", member, workspace.ViewAssets, true},
		{"unlisted view", member, workspace.ViewFinance, false},
		{"nil permissions", &entity.User{Role: "Member"}, workspace.ViewClients, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, workspace.HasPermission(tt.user, tt.view))
		})
	}
}

func TestParseView(t *testing.T) {
	v, ok := workspace.ParseView("Kode Promo")
	assert.True(t, ok)
	assert.Equal(t, workspace.ViewPromoCodes, v)

	_, ok = workspace.ParseView("Gudang")
	assert.False(t, ok)
}

func TestResolveRoute(t *testing.T) {
	tests := []struct {
		hash string
		auth bool
		want workspace.Route
	}{
		{"#/public-booking", false, workspace.Route{Kind: workspace.RoutePublicBooking, Public: true}},
		{"#/public-booking?promo=X", true, workspace.Route{Kind: workspace.RoutePublicBooking, Public: true}},
		{"#/public-lead-form", false, workspace.Route{Kind: workspace.RouteLeadForm, Public: true}},
		{"#/feedback", false, workspace.Route{Kind: workspace.RouteFeedback, Public: true}},
		{"#/suggestion-form", false, workspace.Route{Kind: workspace.RouteSuggestion, Public: true}},
		{"#/revision-form", false, workspace.Route{Kind: workspace.RouteRevision, Public: true}},
		{"#/portal/CLIENT001", false, workspace.Route{Kind: workspace.RouteClientPortal, AccessID: "CLIENT001", Public: true}},
		{"#/freelancer-portal/freelancer_1", false, workspace.Route{Kind: workspace.RouteFreelancerPortal, AccessID: "freelancer_1", Public: true}},
		{"", false, workspace.Route{Kind: workspace.RouteLogin}},
		{"#/anything", false, workspace.Route{Kind: workspace.RouteLogin}},
		{"", true, workspace.Route{Kind: workspace.RouteDashboard}},
	}

	for _, tt := range tests {
		t.Run(tt.hash, func(t *testing.T) {
			assert.Equal(t, tt.want, workspace.ResolveRoute(tt.hash, tt.auth))
		})
	}
}

func TestRegistry_OpenReusesShell(t *testing.T) {
	reg := workspace.NewRegistry(store.NewMemoryTables(), time.Minute)
	ctx := context.Background()

	first, err := reg.Open(ctx, "s1", admin)
	require.NoError(t, err)
	second, err := reg.Open(ctx, "s1", admin)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.True(t, first.Loaded())
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_DropAndNoUser(t *testing.T) {
	reg := workspace.NewRegistry(store.NewMemoryTables(), time.Minute)
	ctx := context.Background()

	_, err := reg.Open(ctx, "s1", nil)
	assert.ErrorIs(t, err, workspace.ErrNoUser)

	_, err = reg.Open(ctx, "s1", admin)
	require.NoError(t, err)
	reg.Drop("s1")

	_, ok := reg.Peek("s1")
	assert.False(t, ok)
}

func TestRegistry_OpenFollowsRevokedPermission(t *testing.T) {
	reg := workspace.NewRegistry(store.NewMemoryTables(), time.Minute)
	ctx := context.Background()
	staff := &entity.User{ID: "u-staf", Role: "Member", Permissions: []string{string(workspace.ViewAssets)}}

	first, err := reg.Open(ctx, "s1", staff)
	require.NoError(t, err)
	require.False(t, first.Render(workspace.ViewAssets).Denied)

	revoked := *staff
	revoked.Permissions = []string{}
	second, err := reg.Open(ctx, "s1", &revoked)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, &revoked, second.User())
	assert.False(t, second.HasPermission(workspace.ViewAssets))

	screen := second.Render(workspace.ViewAssets)
	assert.True(t, screen.Denied)
	assert.Nil(t, screen.Data)

	for _, v := range second.Summarize().Views {
		if v.View == workspace.ViewAssets {
			assert.False(t, v.Allowed)
		}
	}
}

func TestRegistry_SweepDropsIdleShells(t *testing.T) {
	reg := workspace.NewRegistry(store.NewMemoryTables(), time.Minute)
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	reg.SetClock(func() time.Time { return now })

	_, err := reg.Open(ctx, "idle", admin)
	require.NoError(t, err)
	now = now.Add(50 * time.Minute)
	_, err = reg.Open(ctx, "busy", admin)
	require.NoError(t, err)

	now = now.Add(20 * time.Minute)
	assert.Equal(t, 1, reg.Sweep(time.Hour))

	_, ok := reg.Peek("idle")
	assert.False(t, ok)
	_, ok = reg.Peek("busy")
	assert.True(t, ok)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_StartSweeperStopsWithContext(t *testing.T) {
	reg := workspace.NewRegistry(store.NewMemoryTables(), time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		reg.StartSweeper(ctx, time.Millisecond, time.Hour)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
