package promo

import (
	"context"
	"log/slog"
	"time"

	"github.com/venapictures/studio/internal/entity"
	"github.com/venapictures/studio/internal/store"
)

// Sweeper periodically deactivates promo codes that have expired or used up
// their redemptions.
type Sweeper struct {
	codes    store.Table[entity.PromoCode]
	interval time.Duration
	now      func() time.Time
}

// NewSweeper creates a new Sweeper.
func NewSweeper(codes store.Table[entity.PromoCode], interval time.Duration) *Sweeper {
	return &Sweeper{
		codes:    codes,
		interval: interval,
		now:      time.Now,
	}
}

// Start begins the sweep loop. It blocks until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	slog.Info("promo sweeper started", "interval", s.interval.String())
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("promo sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one pass and returns how many codes it deactivated.
func (s *Sweeper) Sweep(ctx context.Context) int {
	codes, err := s.codes.GetAll(ctx)
	if err != nil {
		slog.Error("promo sweeper: failed to list promo codes", "error", err)
		return 0
	}

	now := s.now()
	retired := 0
	for _, code := range codes {
		if ctx.Err() != nil {
			return retired
		}
		if !code.IsActive {
			continue
		}
		reason := Unusable(code, now)
		if reason == "" || reason == "not yet valid" {
			continue
		}
		if s.deactivate(ctx, code, reason) {
			retired++
		}
	}
	return retired
}

func (s *Sweeper) deactivate(ctx context.Context, code entity.PromoCode, reason string) bool {
	_, err := s.codes.Update(ctx, code.ID, store.Patch{"is_active": false})
	if err != nil {
		slog.Error("promo sweeper: failed to deactivate code",
			"code", code.Code,
			"error", err,
		)
		return false
	}

	slog.Info("promo sweeper: code deactivated", "code", code.Code, "reason", reason)
	return true
}
