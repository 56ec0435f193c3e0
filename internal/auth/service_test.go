package auth_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/venapictures/studio/internal/auth"
	"github.com/venapictures/studio/internal/entity"
	"github.com/venapictures/studio/internal/store"
)

func newService(t *testing.T, ttl time.Duration) (*auth.Service, store.Table[entity.User]) {
	t.Helper()
	tables := store.NewMemoryTables()
	hash, err := auth.HashPassword("password123", bcrypt.MinCost)
	require.NoError(t, err)
	_, err = tables.Users.Create(context.Background(), entity.User{
		Email:    "admin@venapictures.com",
		Password: hash,
		FullName: "Admin Vena",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)
	return auth.NewService(tables.Users, auth.NewMemorySessionStore(), bcrypt.MinCost, ttl), tables.Users
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newService(t, time.Hour)
	ctx := context.Background()

	token, identity, err := svc.Login(ctx, "Admin@VenaPictures.com ", "password123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "vena_"))
	assert.Equal(t, "Admin Vena", identity.User.FullName)

	got, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, identity.User.ID, got.User.ID)
	assert.Equal(t, auth.SessionKey(token), got.SessionID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newService(t, time.Hour)

	_, _, err := svc.Login(context.Background(), "admin@venapictures.com", "nope")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newService(t, time.Hour)

	_, _, err := svc.Login(context.Background(), "ghost@venapictures.com", "password123")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthenticate_Expired(t *testing.T) {
	svc, _ := newService(t, time.Nanosecond)
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "admin@venapictures.com", "password123")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, auth.ErrInvalidSession)
}

func TestAuthenticate_Garbage(t *testing.T) {
	svc, _ := newService(t, time.Hour)

	_, err := svc.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidSession)

	_, err = svc.Authenticate(context.Background(), "vena_unknown")
	assert.ErrorIs(t, err, auth.ErrInvalidSession)
}

func TestAuthenticate_DeletedUser(t *testing.T) {
	svc, users := newService(t, time.Hour)
	ctx := context.Background()

	token, identity, err := svc.Login(ctx, "admin@venapictures.com", "password123")
	require.NoError(t, err)
	require.NoError(t, users.Delete(ctx, identity.User.ID))

	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, auth.ErrInvalidSession)
}

func TestLogout(t *testing.T) {
	svc, _ := newService(t, time.Hour)
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "admin@venapictures.com", "password123")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, token))

	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, auth.ErrInvalidSession)
}

func TestIsHashed(t *testing.T) {
	hash, err := auth.HashPassword("password123", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, auth.IsHashed(hash))
	assert.False(t, auth.IsHashed("password123"))
}

func TestRedisSessionStore(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/15"
	}
	ctx := context.Background()
	rs, err := auth.NewRedisSessionStore(ctx, url)
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	defer rs.Close()

	now := time.Now()
	sess := auth.Session{UserID: "u1", CreatedAt: now, ExpiresAt: now.Add(time.Minute)}
	require.NoError(t, rs.Save(ctx, "k1", sess))

	got, err := rs.Load(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)

	require.NoError(t, rs.Delete(ctx, "k1"))
	_, err = rs.Load(ctx, "k1")
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
}
