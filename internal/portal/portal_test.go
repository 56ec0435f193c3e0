package portal_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venapictures/studio/internal/entity"
	"github.com/venapictures/studio/internal/portal"
	"github.com/venapictures/studio/internal/promo"
	"github.com/venapictures/studio/internal/store"
)

type fixture struct {
	tables  *store.Tables
	svc     *portal.Service
	client  entity.Client
	other   entity.Client
	member  entity.TeamMember
	project entity.Project
	pkg     entity.Package
	addOn   entity.AddOn
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	tables := store.NewMemoryTables()
	f := &fixture{tables: tables, svc: portal.NewService(tables)}

	var err error
	f.client, err = tables.Clients.Create(ctx, entity.Client{Name: "Andi & Siska", PortalAccessID: "CLIENT001"})
	require.NoError(t, err)
	f.other, err = tables.Clients.Create(ctx, entity.Client{Name: "Budi", PortalAccessID: "CLIENT002"})
	require.NoError(t, err)
	f.member, err = tables.TeamMembers.Create(ctx, entity.TeamMember{Name: "Rina", Role: "Editor", PortalAccessID: "FREELANCER001"})
	require.NoError(t, err)
	f.project, err = tables.Projects.Create(ctx, entity.Project{
		ProjectName: "Wedding Andi & Siska",
		ClientName:  "Andi & Siska",
		ClientID:    f.client.ID,
		Team:        []entity.AssignedMember{{MemberID: f.member.ID, Name: "Rina", Role: "Editor"}},
		Revisions: []entity.Revision{
			{ID: "rev-1", FreelancerID: f.member.ID, Status: entity.RevisionPending},
		},
	})
	require.NoError(t, err)
	_, err = tables.Projects.Create(ctx, entity.Project{ProjectName: "Prewed Budi", ClientID: f.other.ID})
	require.NoError(t, err)
	_, err = tables.Transactions.Create(ctx, entity.Transaction{ProjectID: f.project.ID, Amount: decimal.NewFromInt(5000000)})
	require.NoError(t, err)
	_, err = tables.Contracts.Create(ctx, entity.Contract{ContractNumber: "VP/CTR/2025/001", ClientID: f.client.ID, ProjectID: f.project.ID})
	require.NoError(t, err)
	_, err = tables.TeamProjectPayments.Create(ctx, entity.TeamProjectPayment{TeamMemberID: f.member.ID, ProjectID: f.project.ID, Status: entity.PaymentUnpaid})
	require.NoError(t, err)
	f.pkg, err = tables.Packages.Create(ctx, entity.Package{Name: "Paket Wedding Basic", Price: decimal.NewFromInt(15000000)})
	require.NoError(t, err)
	f.addOn, err = tables.AddOns.Create(ctx, entity.AddOn{Name: "Drone", Price: decimal.NewFromInt(2000000)})
	require.NoError(t, err)
	return f
}

func TestClient_ScopedToOwner(t *testing.T) {
	f := setup(t)

	view, err := f.svc.Client(context.Background(), "CLIENT001")

	require.NoError(t, err)
	assert.Equal(t, f.client.ID, view.Client.ID)
	require.Len(t, view.Projects, 1)
	assert.Equal(t, f.project.ID, view.Projects[0].ID)
	assert.Len(t, view.Contracts, 1)
	assert.Len(t, view.Transactions, 1)
	assert.Len(t, view.Packages, 1)
	assert.Nil(t, view.Profile)
}

func TestClient_UnknownAccessID(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Client(context.Background(), "NOPE")
	assert.ErrorIs(t, err, portal.ErrPortalNotFound)

	_, err = f.svc.Client(context.Background(), "")
	assert.ErrorIs(t, err, portal.ErrPortalNotFound)
}

func TestFreelancer_ScopedToMember(t *testing.T) {
	f := setup(t)

	view, err := f.svc.Freelancer(context.Background(), "FREELANCER001")

	require.NoError(t, err)
	assert.Equal(t, "Rina", view.Member.Name)
	require.Len(t, view.Projects, 1)
	assert.Equal(t, f.project.ID, view.Projects[0].ID)
	assert.Len(t, view.Payments, 1)
	assert.Empty(t, view.Records)
}

func TestConfirmStage(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	p, err := f.svc.ConfirmStage(ctx, "CLIENT001", f.project.ID, portal.StagePrinting)

	require.NoError(t, err)
	assert.True(t, p.IsPrintingConfirmedByClient)
	assert.False(t, p.IsEditingConfirmedByClient)

	_, err = f.svc.ConfirmStage(ctx, "CLIENT001", f.project.ID, "shipping")
	assert.ErrorIs(t, err, portal.ErrInvalidStage)

	_, err = f.svc.ConfirmStage(ctx, "CLIENT002", f.project.ID, portal.StageEditing)
	assert.ErrorIs(t, err, portal.ErrPortalNotFound)
}

func TestConfirmSubStatus_CreatesNotification(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	p, err := f.svc.ConfirmSubStatus(ctx, "CLIENT001", f.project.ID, "Seleksi Foto", "Tolong foto keluarga diprioritaskan")

	require.NoError(t, err)
	assert.Equal(t, []string{"Seleksi Foto"}, p.ConfirmedSubStatuses)
	assert.Equal(t, "Tolong foto keluarga diprioritaskan", p.ClientSubStatusNotes["Seleksi Foto"])

	notes, err := f.tables.Notifications.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Catatan Klien Baru", notes[0].Title)
	assert.Equal(t, "comment", notes[0].Icon)
	assert.False(t, notes[0].IsRead)
	require.NotNil(t, notes[0].Link)
	assert.Equal(t, "Proyek", notes[0].Link.View)
	assert.Equal(t, f.project.ID, notes[0].Link.ID)
	assert.Contains(t, notes[0].Message, "Andi & Siska")
	assert.Equal(t, `Konfirmasi untuk "Seleksi Foto" telah diterima.`, portal.MsgSubStatusConfirmed("Seleksi Foto"))
}

func TestSignContract(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	contracts, err := f.tables.Contracts.GetAll(ctx)
	require.NoError(t, err)

	c, err := f.svc.SignContract(ctx, "CLIENT001", contracts[0].ID, "data:image/png;base64,AAA")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAA", c.ClientSignature)
	assert.Empty(t, c.VendorSignature)

	_, err = f.svc.SignContract(ctx, "CLIENT002", contracts[0].ID, "x")
	assert.ErrorIs(t, err, portal.ErrPortalNotFound)
}

func TestUpdateRevision_CompletedStampsDate(t *testing.T) {
	f := setup(t)

	p, err := f.svc.UpdateRevision(context.Background(), f.project.ID, "rev-1", portal.RevisionUpdate{
		FreelancerNotes: "Sudah diperbaiki",
		DriveLink:       "https://drive.example/rev-1",
		Status:          entity.RevisionCompleted,
	})

	require.NoError(t, err)
	rev := p.Revisions[0]
	assert.Equal(t, entity.RevisionCompleted, rev.Status)
	assert.Equal(t, "Sudah diperbaiki", rev.FreelancerNotes)
	assert.NotEmpty(t, rev.CompletedDate)
}

func TestUpdateRevision_InProgressKeepsDate(t *testing.T) {
	f := setup(t)

	p, err := f.svc.UpdateMemberRevision(context.Background(), "FREELANCER001", f.project.ID, "rev-1", portal.RevisionUpdate{
		Status: entity.RevisionInProgress,
	})

	require.NoError(t, err)
	assert.Empty(t, p.Revisions[0].CompletedDate)
}

func TestUpdateRevision_Errors(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.UpdateRevision(ctx, f.project.ID, "rev-1", portal.RevisionUpdate{Status: "Batal"})
	assert.ErrorIs(t, err, portal.ErrInvalidStatus)

	_, err = f.svc.UpdateRevision(ctx, f.project.ID, "rev-404", portal.RevisionUpdate{Status: entity.RevisionCompleted})
	assert.ErrorIs(t, err, portal.ErrPortalNotFound)

	_, err = f.svc.UpdateRevision(ctx, f.project.ID, "rev-1", portal.RevisionUpdate{FreelancerID: "someone-else", Status: entity.RevisionCompleted})
	assert.ErrorIs(t, err, portal.ErrPortalNotFound)
}

func TestBook_WithPromoAndDownPayment(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	code, err := f.tables.PromoCodes.Create(ctx, entity.PromoCode{
		Code:          "HEMAT10",
		DiscountType:  entity.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
		IsActive:      true,
	})
	require.NoError(t, err)

	res, err := f.svc.Book(ctx, portal.BookingRequest{
		ClientName:  "Citra",
		ProjectType: "Wedding",
		Date:        "2026-12-01",
		PackageID:   f.pkg.ID,
		AddOnIDs:    []string{f.addOn.ID},
		PromoCode:   "hemat10",
		DownPayment: decimal.NewFromInt(5000000),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, res.Client.PortalAccessID)
	assert.Equal(t, res.Client.ID, res.Project.ClientID)
	assert.Equal(t, "Wedding Citra", res.Project.ProjectName)
	assert.True(t, decimal.NewFromInt(15300000).Equal(res.Project.TotalCost), res.Project.TotalCost.String())
	assert.True(t, decimal.NewFromInt(1700000).Equal(res.Project.DiscountAmount))
	assert.Equal(t, portal.PaymentStatusDP, res.Project.PaymentStatus)
	require.NotNil(t, res.Transaction)
	assert.Equal(t, entity.TransactionIncome, res.Transaction.Type)
	assert.Len(t, res.Project.AddOns, 1)

	updated, err := f.tables.PromoCodes.GetByID(ctx, code.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.UsageCount)

	leads, err := f.tables.Leads.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, portal.LeadStatusConverted, leads[0].Status)
}

func TestBook_NoDownPayment(t *testing.T) {
	f := setup(t)

	res, err := f.svc.Book(context.Background(), portal.BookingRequest{ClientName: "Dewi", PackageID: f.pkg.ID})

	require.NoError(t, err)
	assert.Nil(t, res.Transaction)
	assert.Nil(t, res.Discount)
	assert.Equal(t, portal.PaymentStatusUnpaid, res.Project.PaymentStatus)
}

func TestBook_Rejections(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Book(ctx, portal.BookingRequest{ClientName: "X", PackageID: "missing"})
	assert.ErrorIs(t, err, portal.ErrUnknownPackage)

	_, err = f.svc.Book(ctx, portal.BookingRequest{ClientName: "X", PackageID: f.pkg.ID, PromoCode: "NOPE"})
	assert.ErrorIs(t, err, promo.ErrNotApplicable)

	clients, err := f.tables.Clients.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, clients, 2)
}

func TestSubmitLeadAndSuggestion(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	lead, err := f.svc.SubmitLead(ctx, portal.LeadRequest{Name: "Eka", EventType: "Wedding", Notes: "Budget 20jt"})
	require.NoError(t, err)
	assert.Equal(t, portal.ChannelWebsite, lead.ContactChannel)
	assert.Equal(t, portal.LeadStatusDiscuss, lead.Status)
	assert.Equal(t, "Jenis acara: Wedding\nBudget 20jt", lead.Notes)

	sug, err := f.svc.SubmitSuggestion(ctx, portal.SuggestionRequest{Name: "Fajar", Suggestion: "Tambah paket maternity"})
	require.NoError(t, err)
	assert.Equal(t, portal.ChannelSuggestion, sug.ContactChannel)
	assert.Equal(t, "Saran: Tambah paket maternity", sug.Notes)
}

func TestSubmitFeedback(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	fb, err := f.svc.SubmitFeedback(ctx, portal.FeedbackRequest{ClientName: "Andi", Rating: 5, Feedback: "Mantap"})
	require.NoError(t, err)
	assert.Equal(t, "Sangat Puas", fb.Satisfaction)

	_, err = f.svc.SubmitFeedback(ctx, portal.FeedbackRequest{ClientName: "Andi", Rating: 0})
	assert.ErrorIs(t, err, portal.ErrInvalidRating)
}

func TestCheckPromo_DoesNotRedeem(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	code, err := f.tables.PromoCodes.Create(ctx, entity.PromoCode{
		Code:          "POTONG500",
		DiscountType:  entity.DiscountFixed,
		DiscountValue: decimal.NewFromInt(500000),
		IsActive:      true,
	})
	require.NoError(t, err)

	d, err := f.svc.CheckPromo(ctx, " potong500 ", decimal.NewFromInt(15000000))

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(14500000).Equal(d.Total))
	stored, err := f.tables.PromoCodes.GetByID(ctx, code.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.UsageCount)

	_, err = f.svc.CheckPromo(ctx, "NOPE", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, promo.ErrNotApplicable)
}
