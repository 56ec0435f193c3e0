package workspace

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/venapictures/studio/internal/entity"
	"github.com/venapictures/studio/internal/notify"
	"github.com/venapictures/studio/internal/store"
)

// Registry keeps one shell per session. Shells are built and loaded on first
// use; a shell whose load failed is loaded again on the next request.
type Registry struct {
	tables        *store.Tables
	toastDuration time.Duration
	now           func() time.Time

	mu     sync.Mutex
	shells map[string]*entry
}

type entry struct {
	shell    *Shell
	lastSeen time.Time
}

// NewRegistry creates an empty registry over tables.
func NewRegistry(tables *store.Tables, toastDuration time.Duration) *Registry {
	return &Registry{
		tables:        tables,
		toastDuration: toastDuration,
		now:           time.Now,
		shells:        make(map[string]*entry),
	}
}

// SetClock replaces the registry's time source.
func (r *Registry) SetClock(now func() time.Time) {
	r.mu.Lock()
	r.now = now
	r.mu.Unlock()
}

// Open returns the loaded shell for session, building it if needed. The
// shell's user is replaced by user on every call so permission checks follow
// the current user record.
func (r *Registry) Open(ctx context.Context, session string, user *entity.User) (*Shell, error) {
	if user == nil {
		return nil, ErrNoUser
	}

	r.mu.Lock()
	e, ok := r.shells[session]
	if !ok {
		e = &entry{shell: New(r.tables, user, notify.NewToaster(r.toastDuration))}
		r.shells[session] = e
	}
	e.lastSeen = r.now()
	sh := e.shell
	r.mu.Unlock()

	sh.SetUser(user)

	if !sh.Loaded() {
		if err := sh.Load(ctx); err != nil {
			return sh, err
		}
	}
	return sh, nil
}

// Peek returns the shell for session without loading it.
func (r *Registry) Peek(session string) (*Shell, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.shells[session]
	if !ok {
		return nil, false
	}
	return e.shell, true
}

// Drop forgets the shell for session.
func (r *Registry) Drop(session string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.shells[session]; ok {
		e.shell.Toaster().Dismiss()
		delete(r.shells, session)
	}
}

// Len returns the number of live shells.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.shells)
}

// Sweep drops every shell not opened within idle and returns how many it
// dropped.
func (r *Registry) Sweep(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	dropped := 0
	for session, e := range r.shells {
		if e.lastSeen.Before(cutoff) {
			e.shell.Toaster().Dismiss()
			delete(r.shells, session)
			dropped++
		}
	}
	return dropped
}

// StartSweeper drops idle shells every interval. It blocks until ctx is
// cancelled.
func (r *Registry) StartSweeper(ctx context.Context, interval, idle time.Duration) {
	slog.Info("workspace sweeper started", "interval", interval.String(), "idle", idle.String())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("workspace sweeper stopped")
			return
		case <-ticker.C:
			if n := r.Sweep(idle); n > 0 {
				slog.Info("workspace sweeper: idle shells dropped", "count", n, "live", r.Len())
			}
		}
	}
}
