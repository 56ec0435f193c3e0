package entity

import "github.com/shopspring/decimal"

// Transaction types.
const (
	TransactionIncome  = "Pemasukan"
	TransactionExpense = "Pengeluaran"
)

// Transaction is one line in the income/expense ledger.
type Transaction struct {
	ID              string          `json:"id" db:"id"`
	Date            string          `json:"date" db:"date"`
	Description     string          `json:"description" db:"description"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	Type            string          `json:"type" db:"type"`
	ProjectID       string          `json:"projectId" db:"project_id"`
	Category        string          `json:"category" db:"category"`
	Method          string          `json:"method" db:"method"`
	PocketID        string          `json:"pocketId" db:"pocket_id"`
	CardID          string          `json:"cardId" db:"card_id"`
	VendorSignature string          `json:"vendorSignature" db:"vendor_signature"`
}

func (t Transaction) RecordID() string { return t.ID }

func (t Transaction) Matches(term string) bool {
	return containsFold(term, t.Description, t.Category, t.Method)
}

func (t Transaction) Facet(name string) (string, bool) {
	switch name {
	case "type":
		return t.Type, true
	case "category":
		return t.Category, true
	case "projectId":
		return t.ProjectID, true
	}
	return "", false
}

// FinancialPocket is a savings or budget envelope.
type FinancialPocket struct {
	ID           string          `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Description  string          `json:"description" db:"description"`
	Icon         string          `json:"icon" db:"icon"`
	Type         string          `json:"type" db:"type"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	GoalAmount   decimal.Decimal `json:"goalAmount" db:"goal_amount"`
	LockEndDate  string          `json:"lockEndDate" db:"lock_end_date"`
	SourceCardID string          `json:"sourceCardId" db:"source_card_id"`
}

func (p FinancialPocket) RecordID() string { return p.ID }

func (p FinancialPocket) Matches(term string) bool { return containsFold(term, p.Name, p.Description) }

func (p FinancialPocket) Facet(name string) (string, bool) {
	if name == "type" {
		return p.Type, true
	}
	return "", false
}

// Card is a bank account or payment card the studio moves money through.
type Card struct {
	ID             string          `json:"id" db:"id"`
	CardHolderName string          `json:"cardHolderName" db:"card_holder_name"`
	BankName       string          `json:"bankName" db:"bank_name"`
	CardType       string          `json:"cardType" db:"card_type"`
	LastFourDigits string          `json:"lastFourDigits" db:"last_four_digits"`
	ExpiryDate     string          `json:"expiryDate" db:"expiry_date"`
	Balance        decimal.Decimal `json:"balance" db:"balance"`
	ColorGradient  string          `json:"colorGradient" db:"color_gradient"`
}

func (c Card) RecordID() string { return c.ID }

func (c Card) Matches(term string) bool {
	return containsFold(term, c.CardHolderName, c.BankName, c.LastFourDigits)
}

// Team project payment statuses.
const (
	PaymentPaid   = "Paid"
	PaymentUnpaid = "Unpaid"
)

// TeamProjectPayment is the fee owed to one team member for one project.
type TeamProjectPayment struct {
	ID             string          `json:"id" db:"id"`
	ProjectID      string          `json:"projectId" db:"project_id"`
	TeamMemberName string          `json:"teamMemberName" db:"team_member_name"`
	TeamMemberID   string          `json:"teamMemberId" db:"team_member_id"`
	Date           string          `json:"date" db:"date"`
	Status         string          `json:"status" db:"status"`
	Fee            decimal.Decimal `json:"fee" db:"fee"`
	Reward         decimal.Decimal `json:"reward" db:"reward"`
}

func (p TeamProjectPayment) RecordID() string { return p.ID }

func (p TeamProjectPayment) Matches(term string) bool { return containsFold(term, p.TeamMemberName) }

func (p TeamProjectPayment) Facet(name string) (string, bool) {
	switch name {
	case "status":
		return p.Status, true
	case "teamMemberId":
		return p.TeamMemberID, true
	case "projectId":
		return p.ProjectID, true
	}
	return "", false
}

// TeamPaymentRecord is a payslip grouping several project payments.
type TeamPaymentRecord struct {
	ID                string          `json:"id" db:"id"`
	RecordNumber      string          `json:"recordNumber" db:"record_number"`
	TeamMemberID      string          `json:"teamMemberId" db:"team_member_id"`
	Date              string          `json:"date" db:"date"`
	ProjectPaymentIDs []string        `json:"projectPaymentIds" db:"project_payment_ids"`
	TotalAmount       decimal.Decimal `json:"totalAmount" db:"total_amount"`
	VendorSignature   string          `json:"vendorSignature" db:"vendor_signature"`
}

func (r TeamPaymentRecord) RecordID() string { return r.ID }

func (r TeamPaymentRecord) Facet(name string) (string, bool) {
	if name == "teamMemberId" {
		return r.TeamMemberID, true
	}
	return "", false
}

// RewardLedgerEntry is a bonus credited to (or withdrawn from) a team
// member's reward balance.
type RewardLedgerEntry struct {
	ID           string          `json:"id" db:"id"`
	TeamMemberID string          `json:"teamMemberId" db:"team_member_id"`
	Date         string          `json:"date" db:"date"`
	Description  string          `json:"description" db:"description"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	ProjectID    string          `json:"projectId" db:"project_id"`
}

func (e RewardLedgerEntry) RecordID() string { return e.ID }

func (e RewardLedgerEntry) Facet(name string) (string, bool) {
	if name == "teamMemberId" {
		return e.TeamMemberID, true
	}
	return "", false
}
