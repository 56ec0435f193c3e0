// Package crud keeps a local copy of one entity table in sync with the
// remote table and reports every mutation through a notifier.
package crud

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/venapictures/studio/internal/entity"
	"github.com/venapictures/studio/internal/store"
)

// Notifier receives one user-facing message per mutation.
type Notifier interface {
	Notify(msg string)
}

// Collection is the local list of one entity plus loading and error state.
// The list only changes after the remote call succeeds.
type Collection[T entity.Record] struct {
	table    store.Table[T]
	notifier Notifier
	name     string

	mu    sync.RWMutex
	items []T
	err   string

	inflight atomic.Int32
}

// New creates an empty collection over table. name is the display name used
// in notifications, such as "Klien" or "Aset".
func New[T entity.Record](table store.Table[T], notifier Notifier, name string) *Collection[T] {
	return &Collection[T]{table: table, notifier: notifier, name: name, items: []T{}}
}

// Name returns the display name.
func (c *Collection[T]) Name() string { return c.name }

// Items returns a copy of the local list.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// SetItems replaces the local list without a remote call.
func (c *Collection[T]) SetItems(items []T) {
	if items == nil {
		items = []T{}
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
}

// Loading reports whether any remote call is in flight.
func (c *Collection[T]) Loading() bool { return c.inflight.Load() > 0 }

// Err returns the message of the last failed call, or "" if the last call
// succeeded.
func (c *Collection[T]) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Get returns the local record with the given id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Fetch reads the whole remote table without touching local state.
func (c *Collection[T]) Fetch(ctx context.Context) ([]T, error) {
	c.begin()
	defer c.end()
	return c.table.GetAll(ctx)
}

// Refresh reloads the local list from the remote table.
func (c *Collection[T]) Refresh(ctx context.Context) error {
	c.begin()
	defer c.end()

	items, err := c.table.GetAll(ctx)
	if err != nil {
		c.fail(fmt.Sprintf("Error memuat %s", c.lower()))
		return err
	}
	c.SetItems(items)
	return nil
}

// Create inserts rec remotely and prepends the stored record.
func (c *Collection[T]) Create(ctx context.Context, rec T) (T, error) {
	c.begin()
	defer c.end()

	created, err := c.table.Create(ctx, rec)
	if err != nil {
		c.fail(fmt.Sprintf("Error menambahkan %s: %v", c.lower(), err))
		return created, err
	}

	c.mu.Lock()
	c.items = append([]T{created}, c.items...)
	c.mu.Unlock()
	c.notify(fmt.Sprintf("%s berhasil ditambahkan", c.name))
	return created, nil
}

// Update patches the remote record and replaces the local one with the result.
func (c *Collection[T]) Update(ctx context.Context, id string, patch store.Patch) (T, error) {
	c.begin()
	defer c.end()

	updated, err := c.table.Update(ctx, id, patch)
	if err != nil {
		c.fail(fmt.Sprintf("Error mengupdate %s: %v", c.lower(), err))
		return updated, err
	}

	c.replace(id, updated)
	c.notify(fmt.Sprintf("%s berhasil diupdate", c.name))
	return updated, nil
}

// Sync is Update without a notification, for bookkeeping writes such as
// marking a notification read.
func (c *Collection[T]) Sync(ctx context.Context, id string, patch store.Patch) (T, error) {
	c.begin()
	defer c.end()

	updated, err := c.table.Update(ctx, id, patch)
	if err != nil {
		c.mu.Lock()
		c.err = err.Error()
		c.mu.Unlock()
		return updated, err
	}
	c.replace(id, updated)
	return updated, nil
}

// Delete removes the remote record and drops it from the local list.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	c.begin()
	defer c.end()

	if err := c.table.Delete(ctx, id); err != nil {
		c.fail(fmt.Sprintf("Error menghapus %s: %v", c.lower(), err))
		return err
	}

	c.mu.Lock()
	kept := c.items[:0:0]
	for _, item := range c.items {
		if item.RecordID() != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
	c.mu.Unlock()
	c.notify(fmt.Sprintf("%s berhasil dihapus", c.name))
	return nil
}

// Filter returns the local records for which keep returns true.
func (c *Collection[T]) Filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := []T{}
	for _, item := range c.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Search narrows the local list by a free-text term and exact facet values.
// Facets the entity does not know never match; "ALL" or "" matches anything.
func (c *Collection[T]) Search(term string, facets map[string]string) []T {
	return c.Filter(func(item T) bool {
		if s, ok := any(item).(entity.Searchable); ok && !s.Matches(term) {
			return false
		}
		for name, want := range facets {
			if want == "" || want == "ALL" {
				continue
			}
			f, ok := any(item).(entity.Faceted)
			if !ok {
				return false
			}
			got, known := f.Facet(name)
			if !known || got != want {
				return false
			}
		}
		return true
	})
}

func (c *Collection[T]) lower() string { return strings.ToLower(c.name) }

func (c *Collection[T]) replace(id string, updated T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].RecordID() == id {
			c.items[i] = updated
		}
	}
}

func (c *Collection[T]) begin() {
	c.inflight.Add(1)
	c.mu.Lock()
	c.err = ""
	c.mu.Unlock()
}

func (c *Collection[T]) end() { c.inflight.Add(-1) }

func (c *Collection[T]) fail(msg string) {
	c.mu.Lock()
	c.err = msg
	c.mu.Unlock()
	c.notify(msg)
}

func (c *Collection[T]) notify(msg string) {
	if c.notifier != nil {
		c.notifier.Notify(msg)
	}
}
