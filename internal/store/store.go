// Package store is the remote table service: one generic Table per entity
// with a PostgreSQL backend and an in-memory backend.
package store

import (
	"context"
	"errors"

	"github.com/venapictures/studio/internal/entity"
)

// ErrNotFound is returned when an update targets a row that does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a write violates a unique constraint.
var ErrDuplicate = errors.New("record already exists")

// ErrUnknownField is returned when a patch names a column the table does not have.
var ErrUnknownField = errors.New("unknown field")

// Patch maps column names to new values. Values already have the Go type of
// the target field; build one with Schema.DecodePatch.
type Patch map[string]any

// Table is the CRUD surface for one entity table. Every call is a single
// backend round trip.
type Table[T entity.Record] interface {
	// GetAll returns every row in insertion order.
	GetAll(ctx context.Context) ([]T, error)
	// GetByID returns nil, nil when no row has the id.
	GetByID(ctx context.Context, id string) (*T, error)
	// Create inserts the record, assigning an id when it has none.
	Create(ctx context.Context, rec T) (T, error)
	// Update changes the columns named in the patch.
	Update(ctx context.Context, id string, patch Patch) (T, error)
	// Delete removes the row. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}
