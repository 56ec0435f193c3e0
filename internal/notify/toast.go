// Package notify holds the transient single-slot toast message shown after a
// mutation succeeds or fails.
package notify

import (
	"sync"
	"time"
)

// DefaultDuration is how long a toast stays visible when no duration is configured.
const DefaultDuration = 3 * time.Second

// Toast is the message currently on screen.
type Toast struct {
	Message   string    `json:"message"`
	ShownAt   time.Time `json:"shownAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Toaster keeps at most one toast. A new message replaces the old one and
// restarts the timer.
type Toaster struct {
	mu       sync.Mutex
	current  *Toast
	gen      uint64
	timer    *time.Timer
	duration time.Duration
}

// NewToaster creates a Toaster whose messages clear after d.
func NewToaster(d time.Duration) *Toaster {
	if d <= 0 {
		d = DefaultDuration
	}
	return &Toaster{duration: d}
}

// Notify shows msg for the default duration.
func (t *Toaster) Notify(msg string) {
	t.ShowFor(msg, t.duration)
}

// ShowFor shows msg for d.
func (t *Toaster) ShowFor(msg string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	t.gen++
	gen := t.gen
	now := time.Now()
	t.current = &Toast{Message: msg, ShownAt: now, ExpiresAt: now.Add(d)}
	t.timer = time.AfterFunc(d, func() { t.expire(gen) })
}

// Current returns the visible toast, if any.
func (t *Toaster) Current() (Toast, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return Toast{}, false
	}
	return *t.current, true
}

// Dismiss clears the toast immediately.
func (t *Toaster) Dismiss() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.current = nil
}

func (t *Toaster) expire(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// A newer message owns the slot.
	if gen != t.gen {
		return
	}
	t.current = nil
	t.timer = nil
}
