package workspace

import (
	"slices"

	"github.com/venapictures/studio/internal/entity"
)

// View is a dashboard screen. Values are the labels stored in user
// permission lists.
type View string

const (
	ViewDashboard     View = "Dashboard"
	ViewLeads         View = "Prospek"
	ViewClients       View = "Klien"
	ViewProjects      View = "Proyek"
	ViewTeam          View = "Freelancer"
	ViewFinance       View = "Keuangan"
	ViewCalendar      View = "Kalender"
	ViewClientReports View = "Laporan Klien"
	ViewPackages      View = "Input Package"
	ViewAssets        View = "Aset"
	ViewContracts     View = "Kontrak"
	ViewSOP           View = "SOP"
	ViewSocialPlanner View = "Perencana Media Sosial"
	ViewPromoCodes    View = "Kode Promo"
	ViewSQLEditor     View = "SQL Editor"
	ViewSettings      View = "Pengaturan"
)

// Views lists every screen in sidebar order.
var Views = []View{
	ViewDashboard, ViewLeads, ViewClients, ViewProjects, ViewTeam, ViewFinance,
	ViewCalendar, ViewClientReports, ViewPackages, ViewAssets, ViewContracts,
	ViewSOP, ViewSocialPlanner, ViewPromoCodes, ViewSQLEditor, ViewSettings,
}

// AccessDenied is the title of the fallback screen shown for a view the user
// may not open.
const AccessDenied = "Akses Ditolak"

// ParseView maps a label to a View.
func ParseView(s string) (View, bool) {
	v := View(s)
	return v, slices.Contains(Views, v)
}

// HasPermission reports whether user may open view. Admins may open
// everything and everyone may open the dashboard.
func HasPermission(user *entity.User, view View) bool {
	if user == nil {
		return false
	}
	if user.Role == entity.RoleAdmin {
		return true
	}
	if view == ViewDashboard {
		return true
	}
	return slices.Contains(user.Permissions, string(view))
}

// viewSlots lists the collections each view is rendered with.
var viewSlots = map[View][]string{
	ViewDashboard: {
		"projects", "clients", "transactions", "teamMembers", "cards", "pockets", "leads",
		"teamProjectPayments", "packages", "assets", "clientFeedback", "contracts", "projectStatusConfig",
	},
	ViewLeads: {
		"leads", "clients", "projects", "packages", "addOns", "transactions", "profile",
		"cards", "pockets", "promoCodes",
	},
	ViewClients: {
		"clients", "projects", "packages", "addOns", "transactions", "profile", "cards",
		"pockets", "contracts", "clientFeedback", "promoCodes",
	},
	ViewProjects: {
		"projects", "clients", "packages", "teamMembers", "teamProjectPayments",
		"transactions", "profile", "cards",
	},
	ViewTeam: {
		"teamMembers", "teamProjectPayments", "teamPaymentRecords", "transactions", "profile",
		"projects", "rewardLedgerEntries", "pockets", "cards",
	},
	ViewFinance: {
		"transactions", "pockets", "projects", "profile", "cards", "teamMembers", "rewardLedgerEntries",
	},
	ViewCalendar:      {"projects", "teamMembers", "profile", "calendarEvents"},
	ViewClientReports: {"clients", "leads", "projects", "clientFeedback"},
	ViewPackages:      {"packages", "addOns", "projects"},
	ViewAssets:        {"assets", "profile"},
	ViewContracts:     {"contracts", "clients", "projects", "profile", "packages"},
	ViewSOP:           {"sops", "profile"},
	ViewSocialPlanner: {"socialMediaPosts", "projects"},
	ViewPromoCodes:    {"promoCodes", "projects"},
	ViewSQLEditor:     {},
	ViewSettings:      {"profile", "transactions", "projects", "users"},
}
