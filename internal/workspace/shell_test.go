package workspace_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venapictures/studio/internal/entity"
	"github.com/venapictures/studio/internal/notify"
	"github.com/venapictures/studio/internal/store"
	"github.com/venapictures/studio/internal/workspace"
)

var admin = &entity.User{ID: "u-admin", FullName: "Admin Vena", Role: entity.RoleAdmin}

type brokenLeads struct {
	store.Table[entity.Lead]
}

func (brokenLeads) GetAll(context.Context) ([]entity.Lead, error) {
	return nil, errors.New("relation \"leads\" does not exist")
}

func seededTables(t *testing.T) *store.Tables {
	t.Helper()
	tables := store.NewMemoryTables()
	ctx := context.Background()
	_, err := tables.Clients.Create(ctx, entity.Client{Name: "Andi & Siska", PortalAccessID: "CLIENT001"})
	require.NoError(t, err)
	_, err = tables.Projects.Create(ctx, entity.Project{ProjectName: "Wedding Andi & Siska", ClientName: "Andi & Siska"})
	require.NoError(t, err)
	_, err = tables.Assets.Create(ctx, entity.Asset{Name: "Kamera Canon EOS R5", Status: entity.AssetAvailable})
	require.NoError(t, err)
	_, err = tables.Profile.Upsert(ctx, store.Patch{"company_name": "Vena Pictures"})
	require.NoError(t, err)
	return tables
}

func TestLoad_PopulatesEverySlot(t *testing.T) {
	shell := workspace.New(seededTables(t), admin, notify.NewToaster(time.Minute))

	require.NoError(t, shell.Load(context.Background()))

	assert.True(t, shell.Loaded())
	assert.Len(t, shell.Clients.Items(), 1)
	assert.Len(t, shell.Projects.Items(), 1)
	assert.Len(t, shell.Assets.Items(), 1)
	require.NotNil(t, shell.Profile())
	assert.Equal(t, "Vena Pictures", shell.Profile().CompanyName)
	_, ok := shell.Toaster().Current()
	assert.False(t, ok)
}

func TestLoad_FailureLeavesStateAndRaisesOneToast(t *testing.T) {
	tables := seededTables(t)
	tables.Leads = brokenLeads{}
	toaster := notify.NewToaster(time.Minute)
	shell := workspace.New(tables, admin, toaster)

	err := shell.Load(context.Background())

	require.Error(t, err)
	assert.False(t, shell.Loaded())
	assert.Empty(t, shell.Clients.Items())
	assert.Nil(t, shell.Profile())
	got, ok := toaster.Current()
	require.True(t, ok)
	assert.Equal(t, workspace.LoadFailedMessage, got.Message)
}

func TestLoad_NoProfile(t *testing.T) {
	shell := workspace.New(store.NewMemoryTables(), admin, notify.NewToaster(time.Minute))

	require.NoError(t, shell.Load(context.Background()))

	assert.Nil(t, shell.Profile())
	assert.True(t, shell.Summarize().ProfileMissing)
}

func TestRender_DeniedShowsFallback(t *testing.T) {
	user := &entity.User{ID: "u1", Role: "Member", Permissions: []string{string(workspace.ViewClients)}}
	shell := workspace.New(seededTables(t), user, notify.NewToaster(time.Minute))
	require.NoError(t, shell.Load(context.Background()))

	screen := shell.Render(workspace.ViewFinance)

	assert.True(t, screen.Denied)
	assert.Equal(t, workspace.AccessDenied, screen.Title)
	assert.Nil(t, screen.Data)
}

func TestRender_AllowedView(t *testing.T) {
	user := &entity.User{ID: "u1", Role: "Member", Permissions: []string{string(workspace.ViewAssets)}}
	shell := workspace.New(seededTables(t), user, notify.NewToaster(time.Minute))
	require.NoError(t, shell.Load(context.Background()))

	screen := shell.Render(workspace.ViewAssets)

	assert.False(t, screen.Denied)
	assets := screen.Data["assets"].([]entity.Asset)
	require.Len(t, assets, 1)
	assert.Equal(t, "Kamera Canon EOS R5", assets[0].Name)
	assert.Contains(t, screen.Data, "profile")
	assert.NotContains(t, screen.Data, "clients")
}

func TestRender_DashboardCarriesStatusConfig(t *testing.T) {
	shell := workspace.New(store.NewMemoryTables(), admin, notify.NewToaster(time.Minute))
	require.NoError(t, shell.Load(context.Background()))

	screen := shell.Render(workspace.ViewDashboard)

	assert.Equal(t, []entity.ProjectStatusConfig{}, screen.Data["projectStatusConfig"])
}

func TestNavigate_RecordsViewEvenWhenDenied(t *testing.T) {
	user := &entity.User{ID: "u1", Role: "Member"}
	shell := workspace.New(store.NewMemoryTables(), user, notify.NewToaster(time.Minute))

	screen, err := shell.Navigate(context.Background(), workspace.ViewSQLEditor, "")

	require.NoError(t, err)
	assert.True(t, screen.Denied)
	assert.Equal(t, workspace.ViewSQLEditor, shell.ActiveView())
}

func TestNavigate_MarksNotificationRead(t *testing.T) {
	tables := store.NewMemoryTables()
	n, err := tables.Notifications.Create(context.Background(), entity.Notification{Title: "Pembayaran masuk"})
	require.NoError(t, err)
	shell := workspace.New(tables, admin, notify.NewToaster(time.Minute))
	require.NoError(t, shell.Load(context.Background()))

	_, err = shell.Navigate(context.Background(), workspace.ViewFinance, n.ID)

	require.NoError(t, err)
	got, ok := shell.Notifications.Get(n.ID)
	require.True(t, ok)
	assert.True(t, got.IsRead)
	_, toasted := shell.Toaster().Current()
	assert.False(t, toasted)
}

func TestMarkAllRead(t *testing.T) {
	tables := store.NewMemoryTables()
	ctx := context.Background()
	for _, title := range []string{"a", "b"} {
		_, err := tables.Notifications.Create(ctx, entity.Notification{Title: title})
		require.NoError(t, err)
	}
	_, err := tables.Notifications.Create(ctx, entity.Notification{Title: "c", IsRead: true})
	require.NoError(t, err)
	shell := workspace.New(tables, admin, notify.NewToaster(time.Minute))
	require.NoError(t, shell.Load(ctx))

	changed, err := shell.MarkAllRead(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, changed)
	assert.Empty(t, shell.Notifications.Filter(func(n entity.Notification) bool { return !n.IsRead }))
}

func TestUpdateProfile_Toasts(t *testing.T) {
	shell := workspace.New(store.NewMemoryTables(), admin, notify.NewToaster(time.Minute))

	p, err := shell.UpdateProfile(context.Background(), store.Patch{"company_name": "Vena"})

	require.NoError(t, err)
	assert.Equal(t, "Vena", p.CompanyName)
	got, _ := shell.Toaster().Current()
	assert.Equal(t, "Profil berhasil diupdate", got.Message)
}

func TestSearch(t *testing.T) {
	shell := workspace.New(seededTables(t), admin, notify.NewToaster(time.Minute))
	require.NoError(t, shell.Load(context.Background()))

	res := shell.Search("andi")

	assert.Len(t, res.Clients, 1)
	assert.Len(t, res.Projects, 1)
	assert.Empty(t, res.TeamMembers)
	assert.Empty(t, shell.Search("").Clients)
}

func TestMutation_ToastFromCollection(t *testing.T) {
	shell := workspace.New(store.NewMemoryTables(), admin, notify.NewToaster(time.Minute))
	require.NoError(t, shell.Load(context.Background()))

	_, err := shell.Assets.Create(context.Background(), entity.Asset{Name: "Kamera Canon EOS R5"})

	require.NoError(t, err)
	got, _ := shell.Toaster().Current()
	assert.Equal(t, "Aset berhasil ditambahkan", got.Message)
}

func TestSign(t *testing.T) {
	tables := store.NewMemoryTables()
	ctx := context.Background()
	p, err := tables.Projects.Create(ctx, entity.Project{ProjectName: "Wedding"})
	require.NoError(t, err)
	shell := workspace.New(tables, admin, notify.NewToaster(time.Minute))
	require.NoError(t, shell.Load(ctx))

	require.NoError(t, shell.Sign(ctx, workspace.DocInvoice, p.ID, "sig"))

	got, _ := shell.Projects.Get(p.ID)
	assert.Equal(t, "sig", got.InvoiceSignature)
	toast, _ := shell.Toaster().Current()
	assert.Equal(t, "Invoice berhasil ditandatangani.", toast.Message)

	err = shell.Sign(ctx, "memo", p.ID, "sig")
	assert.ErrorIs(t, err, workspace.ErrUnknownDocument)
}
