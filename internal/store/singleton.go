package store

import (
	"context"

	"github.com/venapictures/studio/internal/entity"
)

// Singleton wraps a table that holds at most one meaningful row, such as the
// studio profile.
type Singleton[T entity.Record] struct {
	table  Table[T]
	schema *Schema[T]
}

// NewSingleton creates a Singleton over the given table.
func NewSingleton[T entity.Record](table Table[T], schema *Schema[T]) *Singleton[T] {
	return &Singleton[T]{table: table, schema: schema}
}

// Get returns the first row, or nil when the table is empty.
func (s *Singleton[T]) Get(ctx context.Context) (*T, error) {
	rows, err := s.table.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Upsert patches the existing row, or creates one from the patch when the
// table is empty.
func (s *Singleton[T]) Upsert(ctx context.Context, patch Patch) (T, error) {
	var zero T
	if err := s.schema.Check(patch); err != nil {
		return zero, err
	}

	current, err := s.Get(ctx)
	if err != nil {
		return zero, err
	}
	if current != nil {
		return s.table.Update(ctx, (*current).RecordID(), patch)
	}

	var rec T
	if err := s.schema.Apply(&rec, patch); err != nil {
		return zero, err
	}
	return s.table.Create(ctx, rec)
}

// Create inserts rec as a whole record. Callers check Get first.
func (s *Singleton[T]) Create(ctx context.Context, rec T) (T, error) {
	return s.table.Create(ctx, rec)
}
