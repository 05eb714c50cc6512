package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/workvortex/vortex-api/internal/domain/auth"
	"github.com/workvortex/vortex-api/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func newSession(id, principal string, ttl time.Duration) domainauth.Session {
	now := time.Now()
	return domainauth.Session{
		ID:          id,
		PrincipalID: principal,
		Email:       "user@example.com",
		Token:       "signed-token",
		IssuedAt:    now,
		ExpiresAt:   now.Add(ttl),
	}
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := newSession("test-session-1", "acct-123", 30*time.Minute)
	require.NoError(t, store.Save(ctx, session))

	retrieved, err := store.Get(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, retrieved.ID)
	assert.Equal(t, session.PrincipalID, retrieved.PrincipalID)
	assert.Equal(t, session.Email, retrieved.Email)
	assert.WithinDuration(t, session.ExpiresAt, retrieved.ExpiresAt, time.Second)

	ttl := client.TTL(ctx, "session:test-session-1").Val()
	assert.True(t, ttl > 29*time.Minute && ttl <= 30*time.Minute)
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	_, err := NewSessionStore(client).Get(context.Background(), "non-existent")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_Delete(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newSession("test-session-delete", "acct-1", 30*time.Minute)))
	_, err := store.Get(ctx, "test-session-delete")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "test-session-delete"))
	_, err = store.Get(ctx, "test-session-delete")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_DeleteByPrincipal(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newSession("s-1", "acct-9", time.Hour)))
	require.NoError(t, store.Save(ctx, newSession("s-2", "acct-9", time.Hour)))
	require.NoError(t, store.Save(ctx, newSession("s-3", "acct-other", time.Hour)))

	n, err := store.DeleteByPrincipal(ctx, "acct-9")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = store.Get(ctx, "s-1")
	assert.Equal(t, ErrNotFound, err)
	_, err = store.Get(ctx, "s-3")
	assert.NoError(t, err)
}

func TestSessionStore_ExpiredOnRead(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	current := time.Now()
	store := NewSessionStoreWithOptions(client, SessionStoreOptions{Now: func() time.Time { return current }})
	ctx := context.Background()

	sess := newSession("test-session-ttl", "acct-1", time.Minute)
	sess.ExpiresAt = current.Add(time.Minute)
	require.NoError(t, store.Save(ctx, sess))

	// Redis still holds the key; the store's clock says it has expired.
	current = current.Add(2 * time.Minute)
	_, err := store.Get(ctx, "test-session-ttl")
	assert.Equal(t, ErrNotFound, err)
	assert.Equal(t, int64(0), client.Exists(ctx, "session:test-session-ttl").Val())
}

func TestSessionStore_CustomPrefix(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStoreWithOptions(client, SessionStoreOptions{Prefix: "test-prefix:"})
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newSession("prefix-test", "acct-1", 30*time.Minute)))
	assert.Equal(t, int64(1), client.Exists(ctx, "test-prefix:prefix-test").Val())
}

func TestSessionStore_SaveRejectsInvalid(t *testing.T) {
	t.Parallel()

	// Validation happens before any network call.
	store := NewSessionStore(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}))
	ctx := context.Background()

	err := store.Save(ctx, newSession("", "acct-1", time.Hour))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session ID cannot be empty")

	err = store.Save(ctx, newSession("expired", "acct-1", -time.Hour))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session is expired")

	_, err = store.Get(ctx, "")
	assert.Equal(t, ErrNotFound, err)
	assert.NoError(t, store.Delete(ctx, ""))
}
