package entity

import "github.com/shopspring/decimal"

// Revision statuses.
const (
	RevisionPending    = "Menunggu Revisi"
	RevisionInProgress = "Sedang Dikerjakan"
	RevisionCompleted  = "Selesai"
)

// Revision is a change request on a project assigned to a freelancer.
type Revision struct {
	ID              string `json:"id"`
	Date            string `json:"date"`
	AdminNotes      string `json:"adminNotes"`
	Deadline        string `json:"deadline"`
	FreelancerID    string `json:"freelancerId"`
	Status          string `json:"status"`
	FreelancerNotes string `json:"freelancerNotes,omitempty"`
	DriveLink       string `json:"driveLink,omitempty"`
	CompletedDate   string `json:"completedDate,omitempty"`
}

// AssignedMember is a team member booked on a project with an agreed fee.
type AssignedMember struct {
	MemberID string          `json:"memberId"`
	Name     string          `json:"name"`
	Role     string          `json:"role"`
	Fee      decimal.Decimal `json:"fee"`
	Reward   decimal.Decimal `json:"reward"`
}

// AddOnRef is an add-on copied onto a project at booking time.
type AddOnRef struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Project is a booked job for a client.
type Project struct {
	ID                          string            `json:"id" db:"id"`
	ProjectName                 string            `json:"projectName" db:"project_name"`
	ClientName                  string            `json:"clientName" db:"client_name"`
	ClientID                    string            `json:"clientId" db:"client_id"`
	ProjectType                 string            `json:"projectType" db:"project_type"`
	PackageName                 string            `json:"packageName" db:"package_name"`
	PackageID                   string            `json:"packageId" db:"package_id"`
	AddOns                      []AddOnRef        `json:"addOns" db:"add_ons"`
	Date                        string            `json:"date" db:"date"`
	DeadlineDate                string            `json:"deadlineDate" db:"deadline_date"`
	Location                    string            `json:"location" db:"location"`
	Progress                    int               `json:"progress" db:"progress"`
	Status                      string            `json:"status" db:"status"`
	TotalCost                   decimal.Decimal   `json:"totalCost" db:"total_cost"`
	AmountPaid                  decimal.Decimal   `json:"amountPaid" db:"amount_paid"`
	PaymentStatus               string            `json:"paymentStatus" db:"payment_status"`
	Team                        []AssignedMember  `json:"team" db:"team"`
	Notes                       string            `json:"notes" db:"notes"`
	PromoCodeID                 string            `json:"promoCodeId" db:"promo_code_id"`
	DiscountAmount              decimal.Decimal   `json:"discountAmount" db:"discount_amount"`
	Revisions                   []Revision        `json:"revisions" db:"revisions"`
	ConfirmedSubStatuses        []string          `json:"confirmedSubStatuses" db:"confirmed_sub_statuses"`
	ClientSubStatusNotes        map[string]string `json:"clientSubStatusNotes" db:"client_sub_status_notes"`
	IsEditingConfirmedByClient  bool              `json:"isEditingConfirmedByClient" db:"is_editing_confirmed_by_client"`
	IsPrintingConfirmedByClient bool              `json:"isPrintingConfirmedByClient" db:"is_printing_confirmed_by_client"`
	IsDeliveryConfirmedByClient bool              `json:"isDeliveryConfirmedByClient" db:"is_delivery_confirmed_by_client"`
	InvoiceSignature            string            `json:"invoiceSignature" db:"invoice_signature"`
}

func (p Project) RecordID() string { return p.ID }

func (p Project) Matches(term string) bool {
	return containsFold(term, p.ProjectName, p.ClientName, p.ProjectType, p.Location)
}

func (p Project) Facet(name string) (string, bool) {
	switch name {
	case "status":
		return p.Status, true
	case "projectType":
		return p.ProjectType, true
	case "clientId":
		return p.ClientID, true
	case "paymentStatus":
		return p.PaymentStatus, true
	}
	return "", false
}

// HasMember reports whether the team member is assigned to the project.
func (p Project) HasMember(memberID string) bool {
	for _, m := range p.Team {
		if m.MemberID == memberID {
			return true
		}
	}
	return false
}

// CalendarEvent is an internal appointment shown on the calendar.
type CalendarEvent struct {
	ID        string `json:"id" db:"id"`
	Title     string `json:"title" db:"title"`
	StartDate string `json:"startDate" db:"start_date"`
	EndDate   string `json:"endDate" db:"end_date"`
	Type      string `json:"type" db:"type"`
	ProjectID string `json:"projectId" db:"project_id"`
	Notes     string `json:"notes" db:"notes"`
}

func (e CalendarEvent) RecordID() string { return e.ID }

func (e CalendarEvent) Matches(term string) bool { return containsFold(term, e.Title, e.Notes) }

func (e CalendarEvent) Facet(name string) (string, bool) {
	if name == "type" {
		return e.Type, true
	}
	return "", false
}

// SocialMediaPost is a scheduled post in the social planner.
type SocialMediaPost struct {
	ID            string `json:"id" db:"id"`
	ProjectID     string `json:"projectId" db:"project_id"`
	ClientName    string `json:"clientName" db:"client_name"`
	PostType      string `json:"postType" db:"post_type"`
	Platform      string `json:"platform" db:"platform"`
	ScheduledDate string `json:"scheduledDate" db:"scheduled_date"`
	Caption       string `json:"caption" db:"caption"`
	MediaURL      string `json:"mediaUrl" db:"media_url"`
	Status        string `json:"status" db:"status"`
	Notes         string `json:"notes" db:"notes"`
}

func (p SocialMediaPost) RecordID() string { return p.ID }

func (p SocialMediaPost) Matches(term string) bool {
	return containsFold(term, p.ClientName, p.Caption, p.Platform)
}

func (p SocialMediaPost) Facet(name string) (string, bool) {
	switch name {
	case "status":
		return p.Status, true
	case "platform":
		return p.Platform, true
	}
	return "", false
}

// Notification is an in-app message for the dashboard bell.
type Notification struct {
	ID        string            `json:"id" db:"id"`
	Title     string            `json:"title" db:"title"`
	Message   string            `json:"message" db:"message"`
	Timestamp string            `json:"timestamp" db:"timestamp"`
	IsRead    bool              `json:"isRead" db:"is_read"`
	Icon      string            `json:"icon" db:"icon"`
	Link      *NotificationLink `json:"link,omitempty" db:"link"`
}

// NotificationLink points a notification at a dashboard view.
type NotificationLink struct {
	View   string `json:"view"`
	Action string `json:"action,omitempty"`
	ID     string `json:"id,omitempty"`
}

func (n Notification) RecordID() string { return n.ID }

func (n Notification) Matches(term string) bool { return containsFold(term, n.Title, n.Message) }
