package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrilens_backend/internal/feature/auth/domain/entity"
	"nutrilens_backend/internal/feature/auth/usecase"
)

// setupTestRedis starts an in-process Redis server for testing.
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func newTestSession(ttl time.Duration) *entity.Session {
	now := time.Now().Truncate(time.Second)
	return &entity.Session{
		ID:        "session-1",
		UserID:    42,
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestSessionRedis_CreateAndFind(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewSessionRedis(client, "session")
	ctx := context.Background()

	session := newTestSession(time.Hour)
	require.NoError(t, store.Create(ctx, session))

	// Key carries a TTL matching the session expiry
	ttl := mr.TTL("session:session-1")
	assert.Greater(t, ttl, time.Duration(0), "key has no TTL")
	assert.LessOrEqual(t, ttl, time.Hour, "TTL exceeds session lifetime")

	found, err := store.FindByID(ctx, "session-1")
	require.NoError(t, err, "failed to find session")
	assert.Equal(t, session.ID, found.ID, "ID does not match")
	assert.Equal(t, session.UserID, found.UserID, "user ID does not match")
	assert.True(t, found.IsValid(), "stored session must be valid")
}

func TestSessionRedis_Create_AlreadyExpired(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewSessionRedis(client, "session")

	err := store.Create(context.Background(), newTestSession(-time.Minute))
	assert.Error(t, err, "expired sessions must not be stored")
}

func TestSessionRedis_FindByID_NotFound(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewSessionRedis(client, "session")

	found, err := store.FindByID(context.Background(), "missing")

	assert.Nil(t, found, "session should be nil")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionRedis_Revoke(t *testing.T) {
	t.Run("revoked session becomes invalid", func(t *testing.T) {
		_, client := setupTestRedis(t)
		store := NewSessionRedis(client, "session")
		ctx := context.Background()

		require.NoError(t, store.Create(ctx, newTestSession(time.Hour)))
		require.NoError(t, store.Revoke(ctx, "session-1"))

		found, err := store.FindByID(ctx, "session-1")
		require.NoError(t, err)
		assert.NotNil(t, found.RevokedAt, "RevokedAt is not set")
		assert.False(t, found.IsValid(), "revoked session must be invalid")
	})

	t.Run("revoking a missing session returns ErrSessionNotFound", func(t *testing.T) {
		_, client := setupTestRedis(t)
		store := NewSessionRedis(client, "session")

		err := store.Revoke(context.Background(), "missing")
		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})
}

func TestSessionRedis_ExpiryViaRedisTTL(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewSessionRedis(client, "session")
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newTestSession(time.Minute)))

	// Advance past the TTL: the key disappears
	mr.FastForward(2 * time.Minute)

	_, err := store.FindByID(ctx, "session-1")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound, "expired session must be gone")
}
