package ports

// Package ports defines interfaces (hexagonal ports) for identity, session and blob behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"
	"io"

	domainauth "github.com/workvortex/vortex-api/internal/domain/auth"
)

// BeginInput carries inputs for initiating an auth flow.
type BeginInput struct {
	RedirectURL string
}

// AuthProvider initiates and completes an authentication flow against an IdP.
type AuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// ErrSessionNotFound is returned by SessionStore.Get for unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists and retrieves sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// TokenCodec signs and verifies session bearer tokens.
type TokenCodec interface {
	Issue(sess domainauth.Session) (string, error)
	// Verify returns the session id and principal id carried by token.
	Verify(token string) (sessionID, principalID string, err error)
}

// SessionListener receives session lifecycle events.
// Implementations must not call back into the provider synchronously.
type SessionListener func(domainauth.SessionEvent)

// SessionProvider issues sessions and notifies listeners about their lifecycle.
type SessionProvider interface {
	// Current returns the session for a bearer token.
	Current(ctx context.Context, token string) (*domainauth.Session, error)
	// Subscribe registers l and returns a function that unregisters it.
	Subscribe(l SessionListener) (unsubscribe func())
}

// EventBus carries session events between processes.
type EventBus interface {
	Publish(ctx context.Context, ev domainauth.SessionEvent) error
	// Listen delivers events to fn until ctx is done.
	Listen(ctx context.Context, fn func(domainauth.SessionEvent)) error
}

// PutObjectInput describes a blob upload.
type PutObjectInput struct {
	Bucket      string
	Key         string
	ContentType string
	Size        int64
	Body        io.Reader
}

// BlobStore stores binary objects and returns retrieval URLs for them.
type BlobStore interface {
	// Put returns a public URL, or a signed one when the store is private.
	Put(ctx context.Context, in PutObjectInput) (url string, err error)
	// Delete removes an object; the resolver uses it to drop uploads it failed to record.
	Delete(ctx context.Context, bucket, key string) error
}
