package validation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/venapictures/studio/internal/entity"
)

// User validates a dashboard user. Password is checked by the caller on
// create only.
func User(u entity.User) []FieldError {
	var errs []FieldError
	errs = required(errs, "email", u.Email)
	if u.Email != "" && !strings.Contains(u.Email, "@") {
		errs = append(errs, FieldError{Field: "email", Message: "email must be a valid address"})
	}
	errs = required(errs, "fullName", u.FullName)
	errs = required(errs, "role", u.Role)
	return errs
}

func Client(c entity.Client) []FieldError {
	return required(nil, "name", c.Name)
}

func Project(p entity.Project) []FieldError {
	var errs []FieldError
	errs = required(errs, "projectName", p.ProjectName)
	errs = required(errs, "clientName", p.ClientName)
	errs = between(errs, "progress", p.Progress, 0, 100)
	errs = nonNegative(errs, "totalCost", p.TotalCost)
	errs = nonNegative(errs, "amountPaid", p.AmountPaid)
	return errs
}

func TeamMember(m entity.TeamMember) []FieldError {
	var errs []FieldError
	errs = required(errs, "name", m.Name)
	errs = required(errs, "role", m.Role)
	errs = nonNegative(errs, "standardFee", m.StandardFee)
	return errs
}

func Transaction(t entity.Transaction) []FieldError {
	var errs []FieldError
	errs = required(errs, "date", t.Date)
	errs = required(errs, "description", t.Description)
	errs = positive(errs, "amount", t.Amount)
	errs = oneOf(errs, "type", t.Type, entity.TransactionIncome, entity.TransactionExpense)
	return errs
}

func Package(p entity.Package) []FieldError {
	var errs []FieldError
	errs = required(errs, "name", p.Name)
	errs = nonNegative(errs, "price", p.Price)
	errs = nonNegative(errs, "defaultPrintingCost", p.DefaultPrintingCost)
	errs = nonNegative(errs, "defaultTransportCost", p.DefaultTransportCost)
	for _, item := range p.PhysicalItems {
		if strings.TrimSpace(item.Name) == "" || item.Price.IsNegative() {
			errs = append(errs, FieldError{Field: "physicalItems", Message: "physicalItems need a name and a non-negative price"})
			break
		}
	}
	return errs
}

func AddOn(a entity.AddOn) []FieldError {
	var errs []FieldError
	errs = required(errs, "name", a.Name)
	errs = nonNegative(errs, "price", a.Price)
	return errs
}

func Pocket(p entity.FinancialPocket) []FieldError {
	var errs []FieldError
	errs = required(errs, "name", p.Name)
	errs = nonNegative(errs, "goalAmount", p.GoalAmount)
	return errs
}

func Lead(l entity.Lead) []FieldError {
	return required(nil, "name", l.Name)
}

func Card(c entity.Card) []FieldError {
	var errs []FieldError
	errs = required(errs, "cardHolderName", c.CardHolderName)
	errs = required(errs, "bankName", c.BankName)
	return errs
}

// Asset requires name and category, a known status and a non-negative price.
func Asset(a entity.Asset) []FieldError {
	var errs []FieldError
	errs = required(errs, "name", a.Name)
	errs = required(errs, "category", a.Category)
	errs = oneOf(errs, "status", a.Status, entity.AssetStatuses...)
	errs = nonNegative(errs, "purchasePrice", a.PurchasePrice)
	return errs
}

var hundred = decimal.NewFromInt(100)

// PromoCode requires a code and a positive discount; percentages stop at 100.
func PromoCode(p entity.PromoCode) []FieldError {
	var errs []FieldError
	errs = required(errs, "code", p.Code)
	errs = oneOf(errs, "discountType", p.DiscountType, entity.DiscountPercentage, entity.DiscountFixed)
	errs = positive(errs, "discountValue", p.DiscountValue)
	if p.DiscountType == entity.DiscountPercentage && p.DiscountValue.GreaterThan(hundred) {
		errs = append(errs, FieldError{Field: "discountValue", Message: "discountValue must be at most 100 for percentage codes"})
	}
	errs = nonNegative(errs, "minOrderAmount", p.MinOrderAmount)
	if p.MaxUsage < 0 {
		errs = append(errs, FieldError{Field: "maxUsage", Message: "maxUsage must not be negative"})
	}
	return errs
}

func SOP(s entity.SOP) []FieldError {
	var errs []FieldError
	errs = required(errs, "title", s.Title)
	errs = required(errs, "category", s.Category)
	errs = required(errs, "content", s.Content)
	return errs
}

func Contract(c entity.Contract) []FieldError {
	var errs []FieldError
	errs = required(errs, "clientId", c.ClientID)
	errs = nonNegative(errs, "totalCost", c.TotalCost)
	errs = nonNegative(errs, "downPayment", c.DownPayment)
	return errs
}

func ClientFeedback(f entity.ClientFeedback) []FieldError {
	var errs []FieldError
	errs = required(errs, "clientName", f.ClientName)
	errs = between(errs, "rating", f.Rating, 1, 5)
	return errs
}

func CalendarEvent(e entity.CalendarEvent) []FieldError {
	var errs []FieldError
	errs = required(errs, "title", e.Title)
	errs = required(errs, "startDate", e.StartDate)
	return errs
}

func SocialMediaPost(p entity.SocialMediaPost) []FieldError {
	var errs []FieldError
	errs = required(errs, "platform", p.Platform)
	errs = required(errs, "scheduledDate", p.ScheduledDate)
	return errs
}

func Notification(n entity.Notification) []FieldError {
	return required(nil, "title", n.Title)
}

func TeamProjectPayment(p entity.TeamProjectPayment) []FieldError {
	var errs []FieldError
	errs = required(errs, "teamMemberId", p.TeamMemberID)
	errs = oneOf(errs, "status", p.Status, entity.PaymentPaid, entity.PaymentUnpaid)
	errs = nonNegative(errs, "fee", p.Fee)
	return errs
}

func TeamPaymentRecord(r entity.TeamPaymentRecord) []FieldError {
	var errs []FieldError
	errs = required(errs, "teamMemberId", r.TeamMemberID)
	errs = nonNegative(errs, "totalAmount", r.TotalAmount)
	return errs
}

func RewardLedgerEntry(e entity.RewardLedgerEntry) []FieldError {
	return required(nil, "teamMemberId", e.TeamMemberID)
}
