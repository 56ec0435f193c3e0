package entity

import "github.com/shopspring/decimal"

// PhysicalItem is a printed deliverable included in a package.
type PhysicalItem struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Package is a sellable service bundle.
type Package struct {
	ID                   string          `json:"id" db:"id"`
	Name                 string          `json:"name" db:"name"`
	Price                decimal.Decimal `json:"price" db:"price"`
	PhysicalItems        []PhysicalItem  `json:"physicalItems" db:"physical_items"`
	DigitalItems         []string        `json:"digitalItems" db:"digital_items"`
	ProcessingTime       string          `json:"processingTime" db:"processing_time"`
	DefaultPrintingCost  decimal.Decimal `json:"defaultPrintingCost" db:"default_printing_cost"`
	DefaultTransportCost decimal.Decimal `json:"defaultTransportCost" db:"default_transport_cost"`
	Photographers        string          `json:"photographers" db:"photographers"`
	Videographers        string          `json:"videographers" db:"videographers"`
}

func (p Package) RecordID() string { return p.ID }

func (p Package) Matches(term string) bool { return containsFold(term, p.Name, p.ProcessingTime) }

// AddOn is an optional extra that can be booked with a package.
type AddOn struct {
	ID    string          `json:"id" db:"id"`
	Name  string          `json:"name" db:"name"`
	Price decimal.Decimal `json:"price" db:"price"`
}

func (a AddOn) RecordID() string { return a.ID }

func (a AddOn) Matches(term string) bool { return containsFold(term, a.Name) }

// Asset statuses.
const (
	AssetAvailable   = "AVAILABLE"
	AssetInUse       = "IN_USE"
	AssetMaintenance = "MAINTENANCE"
)

// AssetStatuses lists the valid asset statuses in display order.
var AssetStatuses = []string{AssetAvailable, AssetInUse, AssetMaintenance}

// Asset is a piece of studio equipment.
type Asset struct {
	ID            string          `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	Category      string          `json:"category" db:"category"`
	PurchaseDate  string          `json:"purchaseDate" db:"purchase_date"`
	PurchasePrice decimal.Decimal `json:"purchasePrice" db:"purchase_price"`
	SerialNumber  string          `json:"serialNumber" db:"serial_number"`
	Status        string          `json:"status" db:"status"`
	Notes         string          `json:"notes" db:"notes"`
}

func (a Asset) RecordID() string { return a.ID }

func (a Asset) Matches(term string) bool {
	return containsFold(term, a.Name, a.Category, a.SerialNumber)
}

func (a Asset) Facet(name string) (string, bool) {
	switch name {
	case "status":
		return a.Status, true
	case "category":
		return a.Category, true
	}
	return "", false
}

// Discount types.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// PromoCode is a discount code redeemable on public bookings.
type PromoCode struct {
	ID             string          `json:"id" db:"id"`
	Code           string          `json:"code" db:"code"`
	Description    string          `json:"description" db:"description"`
	DiscountType   string          `json:"discountType" db:"discount_type"`
	DiscountValue  decimal.Decimal `json:"discountValue" db:"discount_value"`
	MinOrderAmount decimal.Decimal `json:"minOrderAmount" db:"min_order_amount"`
	MaxUsage       int             `json:"maxUsage" db:"max_usage"`
	UsageCount     int             `json:"usageCount" db:"usage_count"`
	ValidFrom      string          `json:"validFrom" db:"valid_from"`
	ValidUntil     string          `json:"validUntil" db:"valid_until"`
	IsActive       bool            `json:"isActive" db:"is_active"`
	CreatedAt      string          `json:"createdAt" db:"created_at"`
}

func (p PromoCode) RecordID() string { return p.ID }

func (p PromoCode) Matches(term string) bool { return containsFold(term, p.Code, p.Description) }

func (p PromoCode) Facet(name string) (string, bool) {
	switch name {
	case "discountType":
		return p.DiscountType, true
	case "isActive":
		if p.IsActive {
			return "true", true
		}
		return "false", true
	}
	return "", false
}

// SOP is a standard operating procedure document. Content is markdown.
type SOP struct {
	ID          string `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Category    string `json:"category" db:"category"`
	Content     string `json:"content" db:"content"`
	LastUpdated string `json:"lastUpdated" db:"last_updated"`
}

func (s SOP) RecordID() string { return s.ID }

func (s SOP) Matches(term string) bool { return containsFold(term, s.Title, s.Content) }

func (s SOP) Facet(name string) (string, bool) {
	if name == "category" {
		return s.Category, true
	}
	return "", false
}

// Contract is a signed agreement between the studio and a client.
type Contract struct {
	ID                string          `json:"id" db:"id"`
	ContractNumber    string          `json:"contractNumber" db:"contract_number"`
	ClientID          string          `json:"clientId" db:"client_id"`
	ProjectID         string          `json:"projectId" db:"project_id"`
	SigningDate       string          `json:"signingDate" db:"signing_date"`
	SigningLocation   string          `json:"signingLocation" db:"signing_location"`
	ClientName1       string          `json:"clientName1" db:"client_name1"`
	ClientAddress1    string          `json:"clientAddress1" db:"client_address1"`
	ClientPhone1      string          `json:"clientPhone1" db:"client_phone1"`
	ClientName2       string          `json:"clientName2" db:"client_name2"`
	ServiceTitle      string          `json:"serviceTitle" db:"service_title"`
	TotalCost         decimal.Decimal `json:"totalCost" db:"total_cost"`
	DownPayment       decimal.Decimal `json:"downPayment" db:"down_payment"`
	FinalPaymentDate  string          `json:"finalPaymentDate" db:"final_payment_date"`
	CancellationTerms string          `json:"cancellationTerms" db:"cancellation_terms"`
	Jurisdiction      string          `json:"jurisdiction" db:"jurisdiction"`
	VendorSignature   string          `json:"vendorSignature" db:"vendor_signature"`
	ClientSignature   string          `json:"clientSignature" db:"client_signature"`
}

func (c Contract) RecordID() string { return c.ID }

func (c Contract) Matches(term string) bool {
	return containsFold(term, c.ContractNumber, c.ClientName1, c.ClientName2, c.ServiceTitle)
}

func (c Contract) Facet(name string) (string, bool) {
	switch name {
	case "clientId":
		return c.ClientID, true
	case "projectId":
		return c.ProjectID, true
	}
	return "", false
}
