package store

import (
	"context"
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"

	"github.com/venapictures/studio/internal/entity"
)

const (
	memTable = "records"
	indexID  = "id"
	indexSeq = "seq"
)

type memRecord[T any] struct {
	ID    string
	Seq   uint64
	Value T
}

// MemoryTable implements Table on an in-process go-memdb database. It keeps
// insertion order and enforces the unique columns it was given.
type MemoryTable[T entity.Record] struct {
	db     *memdb.MemDB
	schema *Schema[T]
	unique []string
	seq    atomic.Uint64
}

// NewMemoryTable creates an empty in-memory table. Values of the unique
// columns must differ between rows unless they are empty.
func NewMemoryTable[T entity.Record](schema *Schema[T], unique ...string) *MemoryTable[T] {
	db, err := memdb.NewMemDB(&memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			memTable: {
				Name: memTable,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:    indexID,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					indexSeq: {
						Name:    indexSeq,
						Unique:  true,
						Indexer: &memdb.UintFieldIndex{Field: "Seq"},
					},
				},
			},
		},
	})
	if err != nil {
		// The schema above is static; a failure here is a programming error.
		panic(fmt.Sprintf("store: building memdb schema: %v", err))
	}
	return &MemoryTable[T]{db: db, schema: schema, unique: unique}
}

// GetAll returns every row in insertion order.
func (t *MemoryTable[T]) GetAll(_ context.Context) ([]T, error) {
	txn := t.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(memTable, indexSeq)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", t.schema.Table(), err)
	}
	items := []T{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		items = append(items, obj.(*memRecord[T]).Value)
	}
	return items, nil
}

// GetByID returns the row with the given id, or nil when there is none.
func (t *MemoryTable[T]) GetByID(_ context.Context, id string) (*T, error) {
	txn := t.db.Txn(false)
	defer txn.Abort()

	rec, err := t.lookup(txn, id)
	if err != nil || rec == nil {
		return nil, err
	}
	v := rec.Value
	return &v, nil
}

// Create inserts a row, assigning an id when the record has none.
func (t *MemoryTable[T]) Create(_ context.Context, rec T) (T, error) {
	var zero T
	if rec.RecordID() == "" {
		t.schema.SetID(&rec, uuid.NewString())
	}

	txn := t.db.Txn(true)
	defer txn.Abort()

	existing, err := t.lookup(txn, rec.RecordID())
	if err != nil {
		return zero, err
	}
	if existing != nil {
		return zero, fmt.Errorf("%w: id %s", ErrDuplicate, rec.RecordID())
	}
	if err := t.checkUnique(txn, rec); err != nil {
		return zero, err
	}

	row := &memRecord[T]{ID: rec.RecordID(), Seq: t.seq.Add(1), Value: rec}
	if err := txn.Insert(memTable, row); err != nil {
		return zero, fmt.Errorf("inserting %s: %w", t.schema.Table(), err)
	}
	txn.Commit()
	return rec, nil
}

// Update applies the patch to the row with the given id.
func (t *MemoryTable[T]) Update(_ context.Context, id string, patch Patch) (T, error) {
	var zero T
	if err := t.schema.Check(patch); err != nil {
		return zero, err
	}

	txn := t.db.Txn(true)
	defer txn.Abort()

	existing, err := t.lookup(txn, id)
	if err != nil {
		return zero, err
	}
	if existing == nil {
		return zero, ErrNotFound
	}

	updated := existing.Value
	if err := t.schema.Apply(&updated, patch); err != nil {
		return zero, err
	}
	if err := t.checkUnique(txn, updated); err != nil {
		return zero, err
	}

	row := &memRecord[T]{ID: existing.ID, Seq: existing.Seq, Value: updated}
	if err := txn.Insert(memTable, row); err != nil {
		return zero, fmt.Errorf("updating %s: %w", t.schema.Table(), err)
	}
	txn.Commit()
	return updated, nil
}

// Delete removes the row with the given id if it exists.
func (t *MemoryTable[T]) Delete(_ context.Context, id string) error {
	txn := t.db.Txn(true)
	defer txn.Abort()

	if _, err := txn.DeleteAll(memTable, indexID, id); err != nil {
		return fmt.Errorf("deleting %s: %w", t.schema.Table(), err)
	}
	txn.Commit()
	return nil
}

func (t *MemoryTable[T]) lookup(txn *memdb.Txn, id string) (*memRecord[T], error) {
	obj, err := txn.First(memTable, indexID, id)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", t.schema.Table(), err)
	}
	if obj == nil {
		return nil, nil
	}
	return obj.(*memRecord[T]), nil
}

func (t *MemoryTable[T]) checkUnique(txn *memdb.Txn, rec T) error {
	if len(t.unique) == 0 {
		return nil
	}
	it, err := txn.Get(memTable, indexSeq)
	if err != nil {
		return fmt.Errorf("querying %s: %w", t.schema.Table(), err)
	}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		other := obj.(*memRecord[T])
		if other.ID == rec.RecordID() {
			continue
		}
		for _, col := range t.unique {
			mine, _ := t.schema.Value(rec, col)
			theirs, _ := t.schema.Value(other.Value, col)
			if reflect.ValueOf(mine).IsZero() {
				continue
			}
			if reflect.DeepEqual(mine, theirs) {
				return fmt.Errorf("%w: %s %v", ErrDuplicate, col, mine)
			}
		}
	}
	return nil
}
