// Package seed loads fixture data into the studio tables.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/venapictures/studio/internal/auth"
	"github.com/venapictures/studio/internal/entity"
	"github.com/venapictures/studio/internal/store"
)

//go:embed fixtures/default.yaml
var defaultFixture []byte

// UserSeed is a dashboard user with a plaintext password; the password is
// hashed before it is stored.
type UserSeed struct {
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	FullName    string   `json:"fullName"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// Fixture is the document a seed file decodes into.
type Fixture struct {
	Users       []UserSeed          `json:"users"`
	Clients     []entity.Client     `json:"clients"`
	Packages    []entity.Package    `json:"packages"`
	AddOns      []entity.AddOn      `json:"addOns"`
	TeamMembers []entity.TeamMember `json:"teamMembers"`
	PromoCodes  []entity.PromoCode  `json:"promoCodes"`
	SOPs        []entity.SOP        `json:"sops"`
	Profile     *entity.Profile     `json:"profile"`
}

// Report counts what a run created and skipped.
type Report struct {
	Created map[string]int `json:"created"`
	Skipped map[string]int `json:"skipped"`
}

func (r Report) add(table string, created bool) {
	if created {
		r.Created[table]++
	} else {
		r.Skipped[table]++
	}
}

// Parse decodes a YAML (or JSON) fixture.
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &f, nil
}

// Default returns the built-in fixture.
func Default() *Fixture {
	f, err := Parse(defaultFixture)
	if err != nil {
		panic(err)
	}
	return f
}

// LoadFile reads a fixture from path.
func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	return Parse(data)
}

// Seeder writes fixtures into tables.
type Seeder struct {
	tables     *store.Tables
	bcryptCost int
}

// New creates a Seeder. Passwords are hashed at bcryptCost.
func New(tables *store.Tables, bcryptCost int) *Seeder {
	return &Seeder{tables: tables, bcryptCost: bcryptCost}
}

// Run inserts every fixture record that is not already present. Users match
// by email, clients and team members by portal access id, everything else
// by name or code. The profile is only written when none exists.
func (s *Seeder) Run(ctx context.Context, f *Fixture) (Report, error) {
	rep := Report{Created: map[string]int{}, Skipped: map[string]int{}}

	users, err := s.tables.Users.GetAll(ctx)
	if err != nil {
		return rep, fmt.Errorf("listing users: %w", err)
	}
	for _, u := range f.Users {
		if containsBy(users, func(x entity.User) bool { return strings.EqualFold(x.Email, u.Email) }) {
			rep.add("users", false)
			continue
		}
		hash, err := auth.HashPassword(u.Password, s.bcryptCost)
		if err != nil {
			return rep, err
		}
		if _, err := s.tables.Users.Create(ctx, entity.User{
			Email: u.Email, Password: hash, FullName: u.FullName, Role: u.Role, Permissions: u.Permissions,
		}); err != nil {
			return rep, fmt.Errorf("creating user %s: %w", u.Email, err)
		}
		rep.add("users", true)
	}

	if err := seedTable(ctx, s.tables.Clients, f.Clients, rep, "clients",
		func(a, b entity.Client) bool { return a.PortalAccessID != "" && a.PortalAccessID == b.PortalAccessID || a.Name == b.Name }); err != nil {
		return rep, err
	}
	if err := seedTable(ctx, s.tables.Packages, f.Packages, rep, "packages",
		func(a, b entity.Package) bool { return a.Name == b.Name }); err != nil {
		return rep, err
	}
	if err := seedTable(ctx, s.tables.AddOns, f.AddOns, rep, "addOns",
		func(a, b entity.AddOn) bool { return a.Name == b.Name }); err != nil {
		return rep, err
	}
	if err := seedTable(ctx, s.tables.TeamMembers, f.TeamMembers, rep, "teamMembers",
		func(a, b entity.TeamMember) bool { return a.PortalAccessID != "" && a.PortalAccessID == b.PortalAccessID || a.Name == b.Name }); err != nil {
		return rep, err
	}
	if err := seedTable(ctx, s.tables.PromoCodes, f.PromoCodes, rep, "promoCodes",
		func(a, b entity.PromoCode) bool { return strings.EqualFold(a.Code, b.Code) }); err != nil {
		return rep, err
	}
	if err := seedTable(ctx, s.tables.SOPs, f.SOPs, rep, "sops",
		func(a, b entity.SOP) bool { return a.Title == b.Title }); err != nil {
		return rep, err
	}

	if f.Profile != nil {
		current, err := s.tables.Profile.Get(ctx)
		if err != nil {
			return rep, fmt.Errorf("loading profile: %w", err)
		}
		if current == nil {
			if _, err := s.tables.Profile.Create(ctx, *f.Profile); err != nil {
				return rep, fmt.Errorf("creating profile: %w", err)
			}
			rep.add("profile", true)
		} else {
			rep.add("profile", false)
		}
	}

	slog.Info("seed complete", "created", rep.Created, "skipped", rep.Skipped)
	return rep, nil
}

func seedTable[T entity.Record](ctx context.Context, table store.Table[T], rows []T, rep Report, name string, same func(a, b T) bool) error {
	if len(rows) == 0 {
		return nil
	}
	existing, err := table.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("listing %s: %w", name, err)
	}
	for _, row := range rows {
		if containsBy(existing, func(x T) bool { return same(row, x) }) {
			rep.add(name, false)
			continue
		}
		created, err := table.Create(ctx, row)
		if err != nil {
			return fmt.Errorf("creating %s: %w", name, err)
		}
		existing = append(existing, created)
		rep.add(name, true)
	}
	return nil
}

func containsBy[T any](items []T, pred func(T) bool) bool {
	for _, item := range items {
		if pred(item) {
			return true
		}
	}
	return false
}
