package auth

import (
	"time"

	"github.com/venapictures/studio/internal/entity"
)

// Session is what a session store keeps for one signed-in user. The raw
// token is never stored; stores are keyed by its digest.
type Session struct {
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session has lapsed at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Identity is stored in the request context after authentication.
type Identity struct {
	User      *entity.User
	SessionID string
	ExpiresAt time.Time
}
