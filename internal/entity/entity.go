// Package entity defines the flat business records the studio keeps, one
// type per table. Foreign keys are opaque id strings; nothing here checks
// that a referenced row exists.
package entity

import "strings"

// Record is implemented by every entity type.
type Record interface {
	RecordID() string
}

// Faceted is implemented by entities that can be narrowed by an exact-match
// facet such as status or category.
type Faceted interface {
	Facet(name string) (string, bool)
}

// Searchable is implemented by entities that support free-text search.
type Searchable interface {
	Matches(term string) bool
}

// containsFold reports whether any of the values contains term, ignoring case.
func containsFold(term string, values ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}
