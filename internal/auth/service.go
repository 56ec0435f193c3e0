// Package auth signs dashboard users in with email and password and keeps
// their sessions.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/venapictures/studio/internal/entity"
	"github.com/venapictures/studio/internal/store"
)

// ErrInvalidCredentials is returned when the email or password does not match.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrInvalidSession is returned for unknown, expired or orphaned session tokens.
var ErrInvalidSession = errors.New("invalid or expired session")

const tokenPrefix = "vena_"

// Service provides authentication operations.
type Service struct {
	users      store.Table[entity.User]
	sessions   SessionStore
	bcryptCost int
	ttl        time.Duration
	now        func() time.Time
}

// NewService creates a new auth Service.
func NewService(users store.Table[entity.User], sessions SessionStore, bcryptCost int, ttl time.Duration) *Service {
	return &Service{
		users:      users,
		sessions:   sessions,
		bcryptCost: bcryptCost,
		ttl:        ttl,
		now:        time.Now,
	}
}

// HashPassword returns the bcrypt hash of password.
func (s *Service) HashPassword(password string) (string, error) {
	return HashPassword(password, s.bcryptCost)
}

// HashPassword returns the bcrypt hash of password at cost.
func HashPassword(password string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(b), nil
}

// IsHashed reports whether s already looks like a bcrypt hash.
func IsHashed(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}

// Login checks the credentials and opens a session. It returns the raw
// session token, which is only ever handed to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, *Identity, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("listing users: %w", err)
	}

	var match *entity.User
	for i := range users {
		if strings.EqualFold(users[i].Email, strings.TrimSpace(email)) {
			match = &users[i]
			break
		}
	}
	if match == nil || bcrypt.CompareHashAndPassword([]byte(match.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := generateToken()
	if err != nil {
		return "", nil, err
	}
	now := s.now()
	sess := Session{UserID: match.ID, CreatedAt: now, ExpiresAt: now.Add(s.ttl)}
	key := SessionKey(token)
	if err := s.sessions.Save(ctx, key, sess); err != nil {
		return "", nil, fmt.Errorf("saving session: %w", err)
	}

	slog.Info("user signed in", "userId", match.ID, "expiresAt", sess.ExpiresAt)
	return token, &Identity{User: match, SessionID: key, ExpiresAt: sess.ExpiresAt}, nil
}

// Authenticate resolves a raw session token to an Identity.
func (s *Service) Authenticate(ctx context.Context, token string) (*Identity, error) {
	if !strings.HasPrefix(token, tokenPrefix) {
		return nil, ErrInvalidSession
	}

	key := SessionKey(token)
	sess, err := s.sessions.Load(ctx, key)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if sess.Expired(s.now()) {
		_ = s.sessions.Delete(ctx, key)
		return nil, ErrInvalidSession
	}

	user, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetching session user: %w", err)
	}
	if user == nil {
		_ = s.sessions.Delete(ctx, key)
		return nil, ErrInvalidSession
	}
	return &Identity{User: user, SessionID: key, ExpiresAt: sess.ExpiresAt}, nil
}

// Logout ends the session for token. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, SessionKey(token)); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// SessionKey is the store key for a raw token: the hex sha256 digest.
func SessionKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating random bytes: %w", err)
	}
	return tokenPrefix + base64.RawURLEncoding.EncodeToString(b), nil
}
