package redis

// Package redis provides Redis-based adapters for sessions and session events.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	domainauth "github.com/workvortex/vortex-api/internal/domain/auth"
	"github.com/workvortex/vortex-api/internal/ports"
)

// SessionStore is a Redis-based session store for production use.
// Keys expire with the session; each principal also has a set of its session ids
// so all of them can be revoked together.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// SessionStoreOptions configures a SessionStore.
type SessionStoreOptions struct {
	Prefix string           // default "session:"
	Now    func() time.Time // default time.Now
}

// NewSessionStore creates a new Redis-based session store.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return NewSessionStoreWithOptions(client, SessionStoreOptions{})
}

// NewSessionStoreWithOptions creates a Redis session store with custom options.
func NewSessionStoreWithOptions(client redis.UniversalClient, opts SessionStoreOptions) *SessionStore {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "session:"
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &SessionStore{client: client, prefix: prefix, now: now}
}

func (s *SessionStore) key(id string) string { return s.prefix + id }

var _ ports.SessionStore = (*SessionStore)(nil)

func (s *SessionStore) principalKey(principalID string) string {
	return s.prefix + "principal:" + principalID
}

func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return errors.New("session is expired")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	_, err = s.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.key(sess.ID), data, ttl)
		if sess.PrincipalID != "" {
			idx := s.principalKey(sess.PrincipalID)
			p.SAdd(ctx, idx, sess.ID)
			// the index lives as long as the most recently saved session
			p.Expire(ctx, idx, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, ErrNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess domainauth.Session
	if unmarshalErr := json.Unmarshal(data, &sess); unmarshalErr != nil {
		return domainauth.Session{}, fmt.Errorf("unmarshal session: %w", unmarshalErr)
	}

	if sess.Expired(s.now()) {
		if deleteErr := s.Delete(ctx, id); deleteErr != nil {
			return domainauth.Session{}, fmt.Errorf("cleanup expired session: %w", deleteErr)
		}
		return domainauth.Session{}, ErrNotFound
	}

	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.key(id)).Err()
}

// DeleteByPrincipal removes every session belonging to principalID and returns how many were removed.
func (s *SessionStore) DeleteByPrincipal(ctx context.Context, principalID string) (int, error) {
	if principalID == "" {
		return 0, nil
	}
	idx := s.principalKey(principalID)
	ids, err := s.client.SMembers(ctx, idx).Result()
	if err != nil {
		return 0, fmt.Errorf("redis smembers: %w", err)
	}

	var removed int64
	cmds, err := s.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		for _, id := range ids {
			p.Del(ctx, s.key(id))
		}
		p.Del(ctx, idx)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("redis delete sessions: %w", err)
	}
	for _, c := range cmds[:len(ids)] {
		if ic, ok := c.(*redis.IntCmd); ok {
			removed += ic.Val()
		}
	}
	return int(removed), nil
}

// ErrNotFound is returned when a session is not found.
var ErrNotFound = ports.ErrSessionNotFound
