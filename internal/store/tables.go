package store

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/venapictures/studio/internal/entity"
)

// Schemas for every table the studio keeps.
var (
	Users               = NewSchema[entity.User]("users")
	Clients             = NewSchema[entity.Client]("clients")
	Projects            = NewSchema[entity.Project]("projects")
	TeamMembers         = NewSchema[entity.TeamMember]("team_members")
	Transactions        = NewSchema[entity.Transaction]("transactions")
	Packages            = NewSchema[entity.Package]("packages")
	AddOns              = NewSchema[entity.AddOn]("add_ons")
	FinancialPockets    = NewSchema[entity.FinancialPocket]("financial_pockets")
	TeamProjectPayments = NewSchema[entity.TeamProjectPayment]("team_project_payments")
	TeamPaymentRecords  = NewSchema[entity.TeamPaymentRecord]("team_payment_records")
	Leads               = NewSchema[entity.Lead]("leads")
	RewardLedger        = NewSchema[entity.RewardLedgerEntry]("reward_ledger_entries")
	Cards               = NewSchema[entity.Card]("cards")
	Assets              = NewSchema[entity.Asset]("assets")
	ClientFeedback      = NewSchema[entity.ClientFeedback]("client_feedback")
	Contracts           = NewSchema[entity.Contract]("contracts")
	Notifications       = NewSchema[entity.Notification]("notifications")
	SocialMediaPosts    = NewSchema[entity.SocialMediaPost]("social_media_posts")
	PromoCodes          = NewSchema[entity.PromoCode]("promo_codes")
	SOPs                = NewSchema[entity.SOP]("sops")
	CalendarEvents      = NewSchema[entity.CalendarEvent]("calendar_events")
	Profiles            = NewSchema[entity.Profile]("profiles")
)

// Tables bundles one Table per entity plus the profile singleton.
type Tables struct {
	Users               Table[entity.User]
	Clients             Table[entity.Client]
	Projects            Table[entity.Project]
	TeamMembers         Table[entity.TeamMember]
	Transactions        Table[entity.Transaction]
	Packages            Table[entity.Package]
	AddOns              Table[entity.AddOn]
	FinancialPockets    Table[entity.FinancialPocket]
	TeamProjectPayments Table[entity.TeamProjectPayment]
	TeamPaymentRecords  Table[entity.TeamPaymentRecord]
	Leads               Table[entity.Lead]
	RewardLedger        Table[entity.RewardLedgerEntry]
	Cards               Table[entity.Card]
	Assets              Table[entity.Asset]
	ClientFeedback      Table[entity.ClientFeedback]
	Contracts           Table[entity.Contract]
	Notifications       Table[entity.Notification]
	SocialMediaPosts    Table[entity.SocialMediaPost]
	PromoCodes          Table[entity.PromoCode]
	SOPs                Table[entity.SOP]
	CalendarEvents      Table[entity.CalendarEvent]
	Profile             *Singleton[entity.Profile]
}

// NewPostgresTables binds every table to the given pool.
func NewPostgresTables(pool *pgxpool.Pool) *Tables {
	return &Tables{
		Users:               NewPostgresTable(pool, Users),
		Clients:             NewPostgresTable(pool, Clients),
		Projects:            NewPostgresTable(pool, Projects),
		TeamMembers:         NewPostgresTable(pool, TeamMembers),
		Transactions:        NewPostgresTable(pool, Transactions),
		Packages:            NewPostgresTable(pool, Packages),
		AddOns:              NewPostgresTable(pool, AddOns),
		FinancialPockets:    NewPostgresTable(pool, FinancialPockets),
		TeamProjectPayments: NewPostgresTable(pool, TeamProjectPayments),
		TeamPaymentRecords:  NewPostgresTable(pool, TeamPaymentRecords),
		Leads:               NewPostgresTable(pool, Leads),
		RewardLedger:        NewPostgresTable(pool, RewardLedger),
		Cards:               NewPostgresTable(pool, Cards),
		Assets:              NewPostgresTable(pool, Assets),
		ClientFeedback:      NewPostgresTable(pool, ClientFeedback),
		Contracts:           NewPostgresTable(pool, Contracts),
		Notifications:       NewPostgresTable(pool, Notifications),
		SocialMediaPosts:    NewPostgresTable(pool, SocialMediaPosts),
		PromoCodes:          NewPostgresTable(pool, PromoCodes),
		SOPs:                NewPostgresTable(pool, SOPs),
		CalendarEvents:      NewPostgresTable(pool, CalendarEvents),
		Profile:             NewSingleton[entity.Profile](NewPostgresTable(pool, Profiles), Profiles),
	}
}

// NewMemoryTables creates empty in-memory tables with the same unique
// columns the migrations declare.
func NewMemoryTables() *Tables {
	return &Tables{
		Users:               NewMemoryTable(Users, "email"),
		Clients:             NewMemoryTable(Clients, "portal_access_id"),
		Projects:            NewMemoryTable(Projects),
		TeamMembers:         NewMemoryTable(TeamMembers, "portal_access_id"),
		Transactions:        NewMemoryTable(Transactions),
		Packages:            NewMemoryTable(Packages),
		AddOns:              NewMemoryTable(AddOns),
		FinancialPockets:    NewMemoryTable(FinancialPockets),
		TeamProjectPayments: NewMemoryTable(TeamProjectPayments),
		TeamPaymentRecords:  NewMemoryTable(TeamPaymentRecords),
		Leads:               NewMemoryTable(Leads),
		RewardLedger:        NewMemoryTable(RewardLedger),
		Cards:               NewMemoryTable(Cards),
		Assets:              NewMemoryTable(Assets),
		ClientFeedback:      NewMemoryTable(ClientFeedback),
		Contracts:           NewMemoryTable(Contracts),
		Notifications:       NewMemoryTable(Notifications),
		SocialMediaPosts:    NewMemoryTable(SocialMediaPosts),
		PromoCodes:          NewMemoryTable(PromoCodes, "code"),
		SOPs:                NewMemoryTable(SOPs),
		CalendarEvents:      NewMemoryTable(CalendarEvents),
		Profile:             NewSingleton[entity.Profile](NewMemoryTable(Profiles), Profiles),
	}
}
