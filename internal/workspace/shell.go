// Package workspace is the per-session application shell: every entity
// collection, the studio profile, the active view and the toast slot.
package workspace

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/venapictures/studio/internal/crud"
	"github.com/venapictures/studio/internal/entity"
	"github.com/venapictures/studio/internal/notify"
	"github.com/venapictures/studio/internal/store"
)

// LoadFailedMessage is the toast raised when the initial load fails.
const LoadFailedMessage = "Error loading data from database"

// ErrNoUser is returned by operations that need a signed-in user.
var ErrNoUser = errors.New("no signed-in user")

// Shell holds the state of one signed-in session.
type Shell struct {
	tables *store.Tables
	toast  *notify.Toaster

	Users               *crud.Collection[entity.User]
	Clients             *crud.Collection[entity.Client]
	Projects            *crud.Collection[entity.Project]
	TeamMembers         *crud.Collection[entity.TeamMember]
	Transactions        *crud.Collection[entity.Transaction]
	Packages            *crud.Collection[entity.Package]
	AddOns              *crud.Collection[entity.AddOn]
	Pockets             *crud.Collection[entity.FinancialPocket]
	TeamProjectPayments *crud.Collection[entity.TeamProjectPayment]
	TeamPaymentRecords  *crud.Collection[entity.TeamPaymentRecord]
	Leads               *crud.Collection[entity.Lead]
	RewardLedger        *crud.Collection[entity.RewardLedgerEntry]
	Cards               *crud.Collection[entity.Card]
	Assets              *crud.Collection[entity.Asset]
	ClientFeedback      *crud.Collection[entity.ClientFeedback]
	Contracts           *crud.Collection[entity.Contract]
	Notifications       *crud.Collection[entity.Notification]
	SocialMediaPosts    *crud.Collection[entity.SocialMediaPost]
	PromoCodes          *crud.Collection[entity.PromoCode]
	SOPs                *crud.Collection[entity.SOP]
	CalendarEvents      *crud.Collection[entity.CalendarEvent]

	mu      sync.RWMutex
	user    *entity.User
	profile *entity.Profile
	active  View
	loaded  bool
}

// New creates an unloaded shell for user. Mutation toasts go to toast.
func New(tables *store.Tables, user *entity.User, toast *notify.Toaster) *Shell {
	return &Shell{
		tables: tables,
		toast:  toast,
		user:   user,
		active: ViewDashboard,

		Users:               crud.New(tables.Users, toast, "User"),
		Clients:             crud.New(tables.Clients, toast, "Klien"),
		Projects:            crud.New(tables.Projects, toast, "Proyek"),
		TeamMembers:         crud.New(tables.TeamMembers, toast, "Freelancer"),
		Transactions:        crud.New(tables.Transactions, toast, "Transaksi"),
		Packages:            crud.New(tables.Packages, toast, "Paket"),
		AddOns:              crud.New(tables.AddOns, toast, "Add-on"),
		Pockets:             crud.New(tables.FinancialPockets, toast, "Kantong"),
		TeamProjectPayments: crud.New(tables.TeamProjectPayments, toast, "Pembayaran tim"),
		TeamPaymentRecords:  crud.New(tables.TeamPaymentRecords, toast, "Slip pembayaran"),
		Leads:               crud.New(tables.Leads, toast, "Prospek"),
		RewardLedger:        crud.New(tables.RewardLedger, toast, "Reward"),
		Cards:               crud.New(tables.Cards, toast, "Kartu"),
		Assets:              crud.New(tables.Assets, toast, "Aset"),
		ClientFeedback:      crud.New(tables.ClientFeedback, toast, "Feedback"),
		Contracts:           crud.New(tables.Contracts, toast, "Kontrak"),
		Notifications:       crud.New(tables.Notifications, toast, "Notifikasi"),
		SocialMediaPosts:    crud.New(tables.SocialMediaPosts, toast, "Postingan"),
		PromoCodes:          crud.New(tables.PromoCodes, toast, "Promo Code"),
		SOPs:                crud.New(tables.SOPs, toast, "SOP"),
		CalendarEvents:      crud.New(tables.CalendarEvents, toast, "Acara"),
	}
}

// User returns the signed-in user.
func (s *Shell) User() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetUser replaces the signed-in user. Permission checks made after the call
// see the new role and permission list.
func (s *Shell) SetUser(user *entity.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

// Toaster returns the session's toast slot.
func (s *Shell) Toaster() *notify.Toaster { return s.toast }

// Loaded reports whether a Load has succeeded.
func (s *Shell) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Profile returns the studio profile, or nil when none exists yet.
func (s *Shell) Profile() *entity.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// stage fetches one collection into a pending slice; commit publishes it.
type stage interface {
	fetch(ctx context.Context) error
	commit()
}

type staged[T entity.Record] struct {
	c     *crud.Collection[T]
	items []T
}

func (st *staged[T]) fetch(ctx context.Context) error {
	items, err := st.c.Fetch(ctx)
	st.items = items
	return err
}

func (st *staged[T]) commit() { st.c.SetItems(st.items) }

func stageOf[T entity.Record](c *crud.Collection[T]) stage { return &staged[T]{c: c} }

// Load fetches every collection and the profile in one parallel batch.
// State changes only if every fetch succeeds; otherwise one toast is raised
// and the first error is returned.
func (s *Shell) Load(ctx context.Context) error {
	stages := []stage{
		stageOf(s.Users), stageOf(s.Clients), stageOf(s.Projects), stageOf(s.TeamMembers),
		stageOf(s.Transactions), stageOf(s.Packages), stageOf(s.AddOns), stageOf(s.Pockets),
		stageOf(s.TeamProjectPayments), stageOf(s.TeamPaymentRecords), stageOf(s.Leads),
		stageOf(s.RewardLedger), stageOf(s.Cards), stageOf(s.Assets), stageOf(s.ClientFeedback),
		stageOf(s.Contracts), stageOf(s.Notifications), stageOf(s.SocialMediaPosts),
		stageOf(s.PromoCodes), stageOf(s.SOPs), stageOf(s.CalendarEvents),
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, st := range stages {
		g.Go(func() error { return st.fetch(gctx) })
	}
	var profile *entity.Profile
	g.Go(func() error {
		p, err := s.tables.Profile.Get(gctx)
		profile = p
		return err
	})

	if err := g.Wait(); err != nil {
		s.toast.Notify(LoadFailedMessage)
		return err
	}

	for _, st := range stages {
		st.commit()
	}
	s.mu.Lock()
	s.profile = profile
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// UpdateProfile creates or patches the studio profile.
func (s *Shell) UpdateProfile(ctx context.Context, patch store.Patch) (entity.Profile, error) {
	updated, err := s.tables.Profile.Upsert(ctx, patch)
	if err != nil {
		s.toast.Notify("Error mengupdate profil")
		return updated, err
	}
	s.mu.Lock()
	s.profile = &updated
	s.mu.Unlock()
	s.toast.Notify("Profil berhasil diupdate")
	return updated, nil
}

// HasPermission reports whether the session user may open view.
func (s *Shell) HasPermission(view View) bool {
	return HasPermission(s.User(), view)
}

// ActiveView returns the view last navigated to.
func (s *Shell) ActiveView() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Screen is a rendered view: either the data the view needs or the
// access-denied fallback.
type Screen struct {
	View   View           `json:"view"`
	Denied bool           `json:"denied"`
	Title  string         `json:"title"`
	Data   map[string]any `json:"data,omitempty"`
}

// Render returns the screen for view, or the access-denied fallback when the
// user may not open it.
func (s *Shell) Render(view View) Screen {
	if !s.HasPermission(view) {
		return Screen{View: view, Denied: true, Title: AccessDenied}
	}
	slots, ok := viewSlots[view]
	if !ok {
		view = ViewDashboard
		slots = viewSlots[ViewDashboard]
	}
	data := make(map[string]any, len(slots))
	for _, name := range slots {
		data[name] = s.slot(name)
	}
	return Screen{View: view, Title: string(view), Data: data}
}

// Navigate makes view active and renders it. The view is recorded even when
// access is denied. A non-empty notificationID is marked read.
func (s *Shell) Navigate(ctx context.Context, view View, notificationID string) (Screen, error) {
	s.mu.Lock()
	s.active = view
	s.mu.Unlock()

	if notificationID != "" {
		if err := s.MarkRead(ctx, notificationID); err != nil {
			return s.Render(view), err
		}
	}
	return s.Render(view), nil
}

// MarkRead flags one notification as read.
func (s *Shell) MarkRead(ctx context.Context, id string) error {
	_, err := s.Notifications.Sync(ctx, id, store.Patch{"is_read": true})
	return err
}

// MarkAllRead flags every unread notification as read and returns how many
// changed.
func (s *Shell) MarkAllRead(ctx context.Context) (int, error) {
	unread := s.Notifications.Filter(func(n entity.Notification) bool { return !n.IsRead })
	for i, n := range unread {
		if err := s.MarkRead(ctx, n.ID); err != nil {
			return i, err
		}
	}
	return len(unread), nil
}

// SearchResult groups the global search hits.
type SearchResult struct {
	Clients     []entity.Client     `json:"clients"`
	Projects    []entity.Project    `json:"projects"`
	TeamMembers []entity.TeamMember `json:"teamMembers"`
}

// Search looks for term across clients, projects and team members. An empty
// term returns nothing.
func (s *Shell) Search(term string) SearchResult {
	if term == "" {
		return SearchResult{Clients: []entity.Client{}, Projects: []entity.Project{}, TeamMembers: []entity.TeamMember{}}
	}
	return SearchResult{
		Clients:     s.Clients.Search(term, nil),
		Projects:    s.Projects.Search(term, nil),
		TeamMembers: s.TeamMembers.Search(term, nil),
	}
}

// Summary is the shape of the workspace returned to the dashboard.
type Summary struct {
	User           *entity.User      `json:"user"`
	ActiveView     View              `json:"activeView"`
	Loaded         bool              `json:"loaded"`
	ProfileMissing bool              `json:"profileMissing"`
	Counts         map[string]int    `json:"counts"`
	Errors         map[string]string `json:"errors,omitempty"`
	Toast          *notify.Toast     `json:"toast,omitempty"`
	Views          []ViewAccess      `json:"views"`
}

// ViewAccess pairs a view with whether the user may open it.
type ViewAccess struct {
	View    View `json:"view"`
	Allowed bool `json:"allowed"`
}

// Summarize reports the size and error state of every collection.
func (s *Shell) Summarize() Summary {
	counts := map[string]int{}
	errs := map[string]string{}
	record := func(name string, n int, err string) {
		counts[name] = n
		if err != "" {
			errs[name] = err
		}
	}
	record("users", len(s.Users.Items()), s.Users.Err())
	record("clients", len(s.Clients.Items()), s.Clients.Err())
	record("projects", len(s.Projects.Items()), s.Projects.Err())
	record("teamMembers", len(s.TeamMembers.Items()), s.TeamMembers.Err())
	record("transactions", len(s.Transactions.Items()), s.Transactions.Err())
	record("packages", len(s.Packages.Items()), s.Packages.Err())
	record("addOns", len(s.AddOns.Items()), s.AddOns.Err())
	record("pockets", len(s.Pockets.Items()), s.Pockets.Err())
	record("teamProjectPayments", len(s.TeamProjectPayments.Items()), s.TeamProjectPayments.Err())
	record("teamPaymentRecords", len(s.TeamPaymentRecords.Items()), s.TeamPaymentRecords.Err())
	record("leads", len(s.Leads.Items()), s.Leads.Err())
	record("rewardLedgerEntries", len(s.RewardLedger.Items()), s.RewardLedger.Err())
	record("cards", len(s.Cards.Items()), s.Cards.Err())
	record("assets", len(s.Assets.Items()), s.Assets.Err())
	record("clientFeedback", len(s.ClientFeedback.Items()), s.ClientFeedback.Err())
	record("contracts", len(s.Contracts.Items()), s.Contracts.Err())
	record("notifications", len(s.Notifications.Items()), s.Notifications.Err())
	record("socialMediaPosts", len(s.SocialMediaPosts.Items()), s.SocialMediaPosts.Err())
	record("promoCodes", len(s.PromoCodes.Items()), s.PromoCodes.Err())
	record("sops", len(s.SOPs.Items()), s.SOPs.Err())
	record("calendarEvents", len(s.CalendarEvents.Items()), s.CalendarEvents.Err())

	views := make([]ViewAccess, len(Views))
	for i, v := range Views {
		views[i] = ViewAccess{View: v, Allowed: s.HasPermission(v)}
	}

	sum := Summary{
		User:           s.User(),
		ActiveView:     s.ActiveView(),
		Loaded:         s.Loaded(),
		ProfileMissing: s.Loaded() && s.Profile() == nil,
		Counts:         counts,
		Errors:         errs,
		Views:          views,
	}
	if t, ok := s.toast.Current(); ok {
		sum.Toast = &t
	}
	return sum
}

func (s *Shell) slot(name string) any {
	switch name {
	case "users":
		return s.Users.Items()
	case "clients":
		return s.Clients.Items()
	case "projects":
		return s.Projects.Items()
	case "teamMembers":
		return s.TeamMembers.Items()
	case "transactions":
		return s.Transactions.Items()
	case "packages":
		return s.Packages.Items()
	case "addOns":
		return s.AddOns.Items()
	case "pockets":
		return s.Pockets.Items()
	case "teamProjectPayments":
		return s.TeamProjectPayments.Items()
	case "teamPaymentRecords":
		return s.TeamPaymentRecords.Items()
	case "leads":
		return s.Leads.Items()
	case "rewardLedgerEntries":
		return s.RewardLedger.Items()
	case "cards":
		return s.Cards.Items()
	case "assets":
		return s.Assets.Items()
	case "clientFeedback":
		return s.ClientFeedback.Items()
	case "contracts":
		return s.Contracts.Items()
	case "notifications":
		return s.Notifications.Items()
	case "socialMediaPosts":
		return s.SocialMediaPosts.Items()
	case "promoCodes":
		return s.PromoCodes.Items()
	case "sops":
		return s.SOPs.Items()
	case "calendarEvents":
		return s.CalendarEvents.Items()
	case "profile":
		return s.Profile()
	case "projectStatusConfig":
		if p := s.Profile(); p != nil && p.ProjectStatusConfig != nil {
			return p.ProjectStatusConfig
		}
		return []entity.ProjectStatusConfig{}
	}
	return nil
}
