package entity

import "github.com/shopspring/decimal"

// RoleAdmin is the user role that bypasses per-view permissions.
const RoleAdmin = "Admin"

// User is a dashboard account. Password holds a bcrypt hash and is never
// serialised.
type User struct {
	ID          string   `json:"id" db:"id"`
	Email       string   `json:"email" db:"email"`
	Password    string   `json:"-" db:"password"`
	FullName    string   `json:"fullName" db:"full_name"`
	Role        string   `json:"role" db:"role"`
	Permissions []string `json:"permissions" db:"permissions"`
}

func (u User) RecordID() string { return u.ID }

func (u User) Matches(term string) bool { return containsFold(term, u.FullName, u.Email) }

func (u User) Facet(name string) (string, bool) {
	if name == "role" {
		return u.Role, true
	}
	return "", false
}

// Client is a customer of the studio.
type Client struct {
	ID             string `json:"id" db:"id"`
	Name           string `json:"name" db:"name"`
	Email          string `json:"email" db:"email"`
	Phone          string `json:"phone" db:"phone"`
	Whatsapp       string `json:"whatsapp" db:"whatsapp"`
	Instagram      string `json:"instagram" db:"instagram"`
	Since          string `json:"since" db:"since"`
	Status         string `json:"status" db:"status"`
	ClientType     string `json:"clientType" db:"client_type"`
	LastContact    string `json:"lastContact" db:"last_contact"`
	PortalAccessID string `json:"portalAccessId" db:"portal_access_id"`
}

func (c Client) RecordID() string { return c.ID }

func (c Client) Matches(term string) bool {
	return containsFold(term, c.Name, c.Email, c.Phone, c.Instagram)
}

func (c Client) Facet(name string) (string, bool) {
	switch name {
	case "status":
		return c.Status, true
	case "clientType":
		return c.ClientType, true
	}
	return "", false
}

// Lead is a prospect that has not booked yet.
type Lead struct {
	ID             string `json:"id" db:"id"`
	Name           string `json:"name" db:"name"`
	ContactChannel string `json:"contactChannel" db:"contact_channel"`
	Location       string `json:"location" db:"location"`
	Status         string `json:"status" db:"status"`
	Date           string `json:"date" db:"date"`
	Notes          string `json:"notes" db:"notes"`
	Whatsapp       string `json:"whatsapp" db:"whatsapp"`
}

func (l Lead) RecordID() string { return l.ID }

func (l Lead) Matches(term string) bool { return containsFold(term, l.Name, l.Location, l.Notes) }

func (l Lead) Facet(name string) (string, bool) {
	switch name {
	case "status":
		return l.Status, true
	case "contactChannel":
		return l.ContactChannel, true
	}
	return "", false
}

// PerformanceNote is a dated remark on a team member.
type PerformanceNote struct {
	ID       string `json:"id"`
	Note     string `json:"note"`
	Type     string `json:"type"`
	Date     string `json:"date"`
	Category string `json:"category,omitempty"`
}

// TeamMember is a freelancer or staff member the studio pays per project.
type TeamMember struct {
	ID               string            `json:"id" db:"id"`
	Name             string            `json:"name" db:"name"`
	Role             string            `json:"role" db:"role"`
	Email            string            `json:"email" db:"email"`
	Phone            string            `json:"phone" db:"phone"`
	StandardFee      decimal.Decimal   `json:"standardFee" db:"standard_fee"`
	NoRek            string            `json:"noRek" db:"no_rek"`
	RewardBalance    decimal.Decimal   `json:"rewardBalance" db:"reward_balance"`
	Rating           float64           `json:"rating" db:"rating"`
	PerformanceNotes []PerformanceNote `json:"performanceNotes" db:"performance_notes"`
	PortalAccessID   string            `json:"portalAccessId" db:"portal_access_id"`
}

func (m TeamMember) RecordID() string { return m.ID }

func (m TeamMember) Matches(term string) bool {
	return containsFold(term, m.Name, m.Role, m.Email, m.Phone)
}

func (m TeamMember) Facet(name string) (string, bool) {
	if name == "role" {
		return m.Role, true
	}
	return "", false
}

// ClientFeedback is a satisfaction response collected after a project.
type ClientFeedback struct {
	ID           string `json:"id" db:"id"`
	ClientName   string `json:"clientName" db:"client_name"`
	Satisfaction string `json:"satisfaction" db:"satisfaction"`
	Rating       int    `json:"rating" db:"rating"`
	Feedback     string `json:"feedback" db:"feedback"`
	Date         string `json:"date" db:"date"`
}

func (f ClientFeedback) RecordID() string { return f.ID }

func (f ClientFeedback) Matches(term string) bool {
	return containsFold(term, f.ClientName, f.Feedback)
}

func (f ClientFeedback) Facet(name string) (string, bool) {
	if name == "satisfaction" {
		return f.Satisfaction, true
	}
	return "", false
}
