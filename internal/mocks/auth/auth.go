package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	domainauth "github.com/workvortex/vortex-api/internal/domain/auth"
	"github.com/workvortex/vortex-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthProvider = (*MockAuthProvider)(nil)
	_ ports.SessionStore = (*MemorySessionStore)(nil)
	_ ports.TokenCodec   = PlainTokenCodec{}
	_ ports.EventBus     = (*MemoryEventBus)(nil)
)

// MockAuthProvider simulates an IdP for tests with deterministic state/nonce handling.
type MockAuthProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error)

	AuthURL     string
	DefaultUser domainauth.Identity

	mu        sync.Mutex
	callCount int
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		AuthURL: "https://mock-idp/auth",
		DefaultUser: domainauth.Identity{
			Subject: "mock-user-1",
			Name:    "Mock User",
			Email:   "mock.user@example.com",
		},
	}
}

func (m *MockAuthProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}

	m.mu.Lock()
	m.callCount++
	n := m.callCount
	m.mu.Unlock()

	authURL := m.AuthURL
	if authURL == "" {
		authURL = "https://mock-idp/auth"
	}
	return authURL, fmt.Sprintf("state-%d", n), fmt.Sprintf("nonce-%d", n), nil
}

func (m *MockAuthProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}

	user := m.DefaultUser
	if user.Subject == "" {
		user = domainauth.Identity{Subject: "mock-user-1", Name: "Mock User", Email: "mock.user@example.com"}
	}
	user.ExpiresAt = time.Now().Add(time.Hour)
	return user, nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// DeleteByPrincipal removes all sessions of principalID.
func (m *MemorySessionStore) DeleteByPrincipal(_ context.Context, principalID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.PrincipalID == principalID {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// ErrNotFound is returned by MemorySessionStore for unknown sessions.
var ErrNotFound = ports.ErrSessionNotFound

// ErrBadToken is returned by PlainTokenCodec for malformed tokens.
var ErrBadToken = errors.New("bad token")

// PlainTokenCodec encodes tokens as "<session id>.<principal id>.<unix expiry>" without signing.
type PlainTokenCodec struct{}

func (PlainTokenCodec) Issue(sess domainauth.Session) (string, error) {
	if sess.ID == "" || sess.PrincipalID == "" {
		return "", ErrBadToken
	}
	return fmt.Sprintf("%s.%s.%d", sess.ID, sess.PrincipalID, sess.ExpiresAt.UnixNano()), nil
}

func (PlainTokenCodec) Verify(token string) (string, string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return "", "", ErrBadToken
	}
	return parts[0], parts[1], nil
}

// MemoryEventBus delivers published events to every active listener in-process.
type MemoryEventBus struct {
	mu        sync.Mutex
	listeners map[int]func(domainauth.SessionEvent)
	next      int
	published []domainauth.SessionEvent
	ready     chan struct{}
}

// NewMemoryEventBus creates an empty bus.
func NewMemoryEventBus() *MemoryEventBus {
	return &MemoryEventBus{listeners: make(map[int]func(domainauth.SessionEvent)), ready: make(chan struct{})}
}

func (b *MemoryEventBus) Publish(_ context.Context, ev domainauth.SessionEvent) error {
	b.mu.Lock()
	b.published = append(b.published, ev)
	fns := make([]func(domainauth.SessionEvent), 0, len(b.listeners))
	for _, fn := range b.listeners {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
	return nil
}

func (b *MemoryEventBus) Listen(ctx context.Context, fn func(domainauth.SessionEvent)) error {
	b.mu.Lock()
	id := b.next
	b.next++
	b.listeners[id] = fn
	if id == 0 {
		close(b.ready)
	}
	b.mu.Unlock()

	<-ctx.Done()

	b.mu.Lock()
	delete(b.listeners, id)
	b.mu.Unlock()
	return nil
}

// Ready is closed once the first listener has registered.
func (b *MemoryEventBus) Ready() <-chan struct{} { return b.ready }

// Published returns a copy of all events published so far.
func (b *MemoryEventBus) Published() []domainauth.SessionEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domainauth.SessionEvent(nil), b.published...)
}
