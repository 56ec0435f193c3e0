package portal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venapictures/studio/internal/entity"
	"github.com/venapictures/studio/internal/money"
	"github.com/venapictures/studio/internal/promo"
	"github.com/venapictures/studio/internal/store"
)

// ErrUnknownPackage is returned when a booking names a package that does not exist.
var ErrUnknownPackage = errors.New("unknown package")

// Values written on records created from a public booking.
const (
	ClientStatusActive  = "Aktif"
	ClientTypeDirect    = "Langsung"
	ProjectStatusBooked = "Dikonfirmasi"
	PaymentStatusUnpaid = "Belum Bayar"
	PaymentStatusDP     = "DP Terbayar"
	PaymentStatusPaid   = "Lunas"
	LeadStatusDiscuss   = "Sedang Diskusi"
	LeadStatusConverted = "Dikonversi"
	ChannelWebsite      = "Website"
	ChannelSuggestion   = "Saran"
)

// BookingRequest is the public booking form.
type BookingRequest struct {
	ClientName  string          `json:"clientName"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Whatsapp    string          `json:"whatsapp"`
	Instagram   string          `json:"instagram"`
	ProjectType string          `json:"projectType"`
	Date        string          `json:"date"`
	Location    string          `json:"location"`
	PackageID   string          `json:"packageId"`
	AddOnIDs    []string        `json:"addOnIds"`
	PromoCode   string          `json:"promoCode"`
	DownPayment decimal.Decimal `json:"downPayment"`
	Notes       string          `json:"notes"`
}

// BookingResult is everything a booking created.
type BookingResult struct {
	Client      entity.Client       `json:"client"`
	Project     entity.Project      `json:"project"`
	Transaction *entity.Transaction `json:"transaction,omitempty"`
	Discount    *promo.Discount     `json:"discount,omitempty"`
}

// Book turns a public booking into a client, a project, an optional
// down-payment transaction and a converted lead. The writes are independent
// calls; a failure part-way leaves the records already created in place.
func (s *Service) Book(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	pkg, err := s.tables.Packages.GetByID(ctx, req.PackageID)
	if err != nil {
		return nil, fmt.Errorf("loading package: %w", err)
	}
	if pkg == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPackage, req.PackageID)
	}

	addOns, err := s.pickAddOns(ctx, req.AddOnIDs)
	if err != nil {
		return nil, err
	}
	total := pkg.Price
	for _, a := range addOns {
		total = total.Add(a.Price)
	}

	var discount *promo.Discount
	if req.PromoCode != "" {
		d, err := s.redeem(ctx, req.PromoCode, total)
		if err != nil {
			return nil, err
		}
		discount = &d
		total = d.Total
	}

	today := s.today()
	client, err := s.tables.Clients.Create(ctx, entity.Client{
		Name:           req.ClientName,
		Email:          req.Email,
		Phone:          req.Phone,
		Whatsapp:       req.Whatsapp,
		Instagram:      req.Instagram,
		Since:          today,
		Status:         ClientStatusActive,
		ClientType:     ClientTypeDirect,
		LastContact:    s.timestamp(),
		PortalAccessID: uuid.NewString(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	paid := decimal.Max(req.DownPayment, decimal.Zero)
	if paid.GreaterThan(total) {
		paid = total
	}
	project := entity.Project{
		ProjectName:   fmt.Sprintf("%s %s", req.ProjectType, req.ClientName),
		ClientName:    req.ClientName,
		ClientID:      client.ID,
		ProjectType:   req.ProjectType,
		PackageName:   pkg.Name,
		PackageID:     pkg.ID,
		AddOns:        addOns,
		Date:          req.Date,
		Location:      req.Location,
		Status:        ProjectStatusBooked,
		TotalCost:     total,
		AmountPaid:    paid,
		PaymentStatus: paymentStatus(paid, total),
		Notes:         req.Notes,
	}
	if discount != nil {
		project.PromoCodeID = discount.CodeID
		project.DiscountAmount = discount.Amount
	}
	project, err = s.tables.Projects.Create(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	res := &BookingResult{Client: client, Project: project, Discount: discount}

	if paid.IsPositive() {
		txn, err := s.tables.Transactions.Create(ctx, entity.Transaction{
			Date:        today,
			Description: "DP Proyek " + project.ProjectName,
			Amount:      paid,
			Type:        entity.TransactionIncome,
			ProjectID:   project.ID,
			Category:    "DP Proyek",
			Method:      "Transfer Bank",
		})
		if err != nil {
			return res, fmt.Errorf("recording down payment: %w", err)
		}
		res.Transaction = &txn
	}

	if discount != nil {
		if err := s.countUsage(ctx, discount.CodeID); err != nil {
			return res, err
		}
	}

	if _, err := s.tables.Leads.Create(ctx, entity.Lead{
		Name:           req.ClientName,
		ContactChannel: ChannelWebsite,
		Location:       req.Location,
		Status:         LeadStatusConverted,
		Date:           today,
		Notes:          fmt.Sprintf("Booking %s via formulir publik. Total %s.", pkg.Name, money.FormatIDR(total)),
		Whatsapp:       req.Whatsapp,
	}); err != nil {
		return res, fmt.Errorf("creating lead: %w", err)
	}

	if _, err := s.tables.Notifications.Create(ctx, entity.Notification{
		Title:     "Booking Baru",
		Message:   fmt.Sprintf("%s memesan %s untuk %s.", req.ClientName, pkg.Name, req.Date),
		Timestamp: s.timestamp(),
		Icon:      "lead",
		Link:      &entity.NotificationLink{View: "Proyek", Action: "VIEW_PROJECT_DETAILS", ID: project.ID},
	}); err != nil {
		return res, fmt.Errorf("creating notification: %w", err)
	}

	slog.Info("public booking received", "clientId", client.ID, "projectId", project.ID, "total", total.String())
	return res, nil
}

func (s *Service) pickAddOns(ctx context.Context, ids []string) ([]entity.AddOnRef, error) {
	refs := []entity.AddOnRef{}
	if len(ids) == 0 {
		return refs, nil
	}
	all, err := s.tables.AddOns.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing add-ons: %w", err)
	}
	for _, a := range all {
		if slices.Contains(ids, a.ID) {
			refs = append(refs, entity.AddOnRef{ID: a.ID, Name: a.Name, Price: a.Price})
		}
	}
	return refs, nil
}

func (s *Service) redeem(ctx context.Context, code string, total decimal.Decimal) (promo.Discount, error) {
	codes, err := s.tables.PromoCodes.GetAll(ctx)
	if err != nil {
		return promo.Discount{}, fmt.Errorf("listing promo codes: %w", err)
	}
	pc, ok := promo.Find(codes, code)
	if !ok {
		return promo.Discount{}, fmt.Errorf("%w: unknown code %q", promo.ErrNotApplicable, code)
	}
	return promo.Apply(pc, total, s.now())
}

func (s *Service) countUsage(ctx context.Context, codeID string) error {
	pc, err := s.tables.PromoCodes.GetByID(ctx, codeID)
	if err != nil {
		return fmt.Errorf("loading promo code: %w", err)
	}
	if pc == nil {
		return nil
	}
	if _, err := s.tables.PromoCodes.Update(ctx, codeID, store.Patch{"usage_count": pc.UsageCount + 1}); err != nil {
		return fmt.Errorf("counting promo usage: %w", err)
	}
	return nil
}

func paymentStatus(paid, total decimal.Decimal) string {
	switch {
	case !paid.IsPositive():
		return PaymentStatusUnpaid
	case paid.GreaterThanOrEqual(total):
		return PaymentStatusPaid
	default:
		return PaymentStatusDP
	}
}

// CheckPromo previews what code would take off an order of total without
// redeeming it.
func (s *Service) CheckPromo(ctx context.Context, code string, total decimal.Decimal) (promo.Discount, error) {
	return s.redeem(ctx, code, total)
}
