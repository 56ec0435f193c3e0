// Package portal serves the unauthenticated surfaces: the client and
// freelancer portals keyed by access id, and the public submission forms.
package portal

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/venapictures/studio/internal/entity"
	"github.com/venapictures/studio/internal/store"
)

var (
	// ErrPortalNotFound is returned for an unknown access id, or for a record
	// that does not belong to the portal owner.
	ErrPortalNotFound = errors.New("portal not found")
	// ErrInvalidStage is returned for a confirmation stage other than
	// editing, printing or delivery.
	ErrInvalidStage = errors.New("invalid confirmation stage")
	// ErrInvalidStatus is returned for an unknown revision status.
	ErrInvalidStatus = errors.New("invalid revision status")
)

// Messages shown to the visitor after a successful action.
const (
	MsgRevisionUpdated  = "Update revisi telah berhasil dikirim."
	MsgStageConfirmed   = "Konfirmasi telah diterima. Terima kasih!"
	MsgContractSigned   = "Tanda tangan berhasil disimpan."
	MsgBookingReceived  = "Booking berhasil dikirim! Kami akan segera menghubungi Anda."
	MsgLeadReceived     = "Terima kasih! Formulir Anda telah berhasil dikirim."
	MsgFeedbackReceived = "Terima kasih atas masukan Anda!"
)

// MsgSubStatusConfirmed is shown after a sub-status confirmation.
func MsgSubStatusConfirmed(subStatus string) string {
	return fmt.Sprintf("Konfirmasi untuk %q telah diterima.", subStatus)
}

// Confirmation stages a client can sign off.
const (
	StageEditing  = "editing"
	StagePrinting = "printing"
	StageDelivery = "delivery"
)

// Service reads and writes the tables directly; portals have no session.
type Service struct {
	tables *store.Tables
	now    func() time.Time
}

// NewService creates a portal Service over tables.
func NewService(tables *store.Tables) *Service {
	return &Service{tables: tables, now: time.Now}
}

// ClientView is what a client sees in their portal.
type ClientView struct {
	Client       entity.Client        `json:"client"`
	Projects     []entity.Project     `json:"projects"`
	Contracts    []entity.Contract    `json:"contracts"`
	Transactions []entity.Transaction `json:"transactions"`
	Packages     []entity.Package     `json:"packages"`
	Profile      *entity.Profile      `json:"profile"`
}

// FreelancerView is what a team member sees in their portal.
type FreelancerView struct {
	Member   entity.TeamMember           `json:"member"`
	Projects []entity.Project            `json:"projects"`
	Payments []entity.TeamProjectPayment `json:"payments"`
	Records  []entity.TeamPaymentRecord  `json:"records"`
	Rewards  []entity.RewardLedgerEntry  `json:"rewards"`
	SOPs     []entity.SOP                `json:"sops"`
	Profile  *entity.Profile             `json:"profile"`
}

// Client resolves accessID to the client's portal data.
func (s *Service) Client(ctx context.Context, accessID string) (*ClientView, error) {
	client, err := s.clientByAccess(ctx, accessID)
	if err != nil {
		return nil, err
	}

	projects, err := s.tables.Projects.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	own := keep(projects, func(p entity.Project) bool { return p.ClientID == client.ID })
	ids := make([]string, len(own))
	for i, p := range own {
		ids[i] = p.ID
	}

	contracts, err := s.tables.Contracts.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}
	txns, err := s.tables.Transactions.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	pkgs, err := s.tables.Packages.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing packages: %w", err)
	}
	profile, err := s.tables.Profile.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	return &ClientView{
		Client:       *client,
		Projects:     own,
		Contracts:    keep(contracts, func(c entity.Contract) bool { return c.ClientID == client.ID }),
		Transactions: keep(txns, func(t entity.Transaction) bool { return slices.Contains(ids, t.ProjectID) }),
		Packages:     pkgs,
		Profile:      profile,
	}, nil
}

// Freelancer resolves accessID to the team member's portal data.
func (s *Service) Freelancer(ctx context.Context, accessID string) (*FreelancerView, error) {
	member, err := s.memberByAccess(ctx, accessID)
	if err != nil {
		return nil, err
	}

	projects, err := s.tables.Projects.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	payments, err := s.tables.TeamProjectPayments.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing team payments: %w", err)
	}
	records, err := s.tables.TeamPaymentRecords.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing payment records: %w", err)
	}
	rewards, err := s.tables.RewardLedger.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing reward ledger: %w", err)
	}
	sops, err := s.tables.SOPs.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sops: %w", err)
	}
	profile, err := s.tables.Profile.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	return &FreelancerView{
		Member:   *member,
		Projects: keep(projects, func(p entity.Project) bool { return p.HasMember(member.ID) }),
		Payments: keep(payments, func(p entity.TeamProjectPayment) bool { return p.TeamMemberID == member.ID }),
		Records:  keep(records, func(r entity.TeamPaymentRecord) bool { return r.TeamMemberID == member.ID }),
		Rewards:  keep(rewards, func(r entity.RewardLedgerEntry) bool { return r.TeamMemberID == member.ID }),
		SOPs:     sops,
		Profile:  profile,
	}, nil
}

func (s *Service) clientByAccess(ctx context.Context, accessID string) (*entity.Client, error) {
	if accessID == "" {
		return nil, ErrPortalNotFound
	}
	clients, err := s.tables.Clients.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	for i := range clients {
		if clients[i].PortalAccessID == accessID {
			return &clients[i], nil
		}
	}
	return nil, ErrPortalNotFound
}

func (s *Service) memberByAccess(ctx context.Context, accessID string) (*entity.TeamMember, error) {
	if accessID == "" {
		return nil, ErrPortalNotFound
	}
	members, err := s.tables.TeamMembers.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}
	for i := range members {
		if members[i].PortalAccessID == accessID {
			return &members[i], nil
		}
	}
	return nil, ErrPortalNotFound
}

// ownProject loads projectID and checks it belongs to the client.
func (s *Service) ownProject(ctx context.Context, client *entity.Client, projectID string) (*entity.Project, error) {
	p, err := s.tables.Projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}
	if p == nil || p.ClientID != client.ID {
		return nil, ErrPortalNotFound
	}
	return p, nil
}

func (s *Service) today() string { return s.now().Format(time.DateOnly) }

func (s *Service) timestamp() string { return s.now().UTC().Format(time.RFC3339) }

func keep[T any](items []T, pred func(T) bool) []T {
	out := []T{}
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}
