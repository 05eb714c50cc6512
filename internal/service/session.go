package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	domainauth "github.com/workvortex/vortex-api/internal/domain/auth"
	apperrors "github.com/workvortex/vortex-api/internal/errors"
	"github.com/workvortex/vortex-api/internal/ports"
)

// DefaultSessionTTL is used when SessionPolicy.TTL is zero.
const DefaultSessionTTL = 12 * time.Hour

// SessionDeps groups the ports SessionService drives.
type SessionDeps struct {
	Provider ports.AuthProvider
	Store    ports.SessionStore
	Tokens   ports.TokenCodec
	Bus      ports.EventBus // optional; fans events out to other processes
}

// SessionPolicy controls session lifetime.
type SessionPolicy struct {
	TTL time.Duration
	Now func() time.Time
}

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Deps   SessionDeps
	Policy SessionPolicy
	Logger *slog.Logger
}

// sessionRevoker is implemented by stores that index sessions per principal.
type sessionRevoker interface {
	DeleteByPrincipal(ctx context.Context, principalID string) (int, error)
}

// SessionService issues, refreshes and revokes sessions and tells listeners about it.
// It implements ports.SessionProvider.
type SessionService struct {
	provider ports.AuthProvider
	store    ports.SessionStore
	tokens   ports.TokenCodec
	bus      ports.EventBus
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
	origin   string

	mu        sync.RWMutex
	listeners map[uint64]ports.SessionListener
	nextID    uint64
}

var _ ports.SessionProvider = (*SessionService)(nil)

// NewSessionService constructs a new SessionService.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	if opts.Deps.Provider == nil || opts.Deps.Store == nil || opts.Deps.Tokens == nil {
		panic("SessionService requires Provider, Store and Tokens")
	}
	ttl := opts.Policy.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	now := opts.Policy.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		provider:  opts.Deps.Provider,
		store:     opts.Deps.Store,
		tokens:    opts.Deps.Tokens,
		bus:       opts.Deps.Bus,
		ttl:       ttl,
		now:       now,
		logger:    logger.With("component", "session_service"),
		origin:    uuid.NewString(),
		listeners: make(map[uint64]ports.SessionListener),
	}
}

// BeginLoginResult contains the result of beginning a login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates an authentication flow and returns the provider auth URL with state and nonce.
func (s *SessionService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if redirectURL == "" {
		return nil, apperrors.ValidationField("redirect_url", "redirect URL is required")
	}

	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}
	return &BeginLoginResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteLoginInput groups parameters for completing a login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLoginResult contains the result of completing a login flow.
type CompleteLoginResult struct {
	Session  domainauth.Session
	Identity domainauth.Identity
}

// CompleteLogin exchanges the code for an identity, persists a new session and publishes SignedIn.
// The identity subject becomes the session principal id.
func (s *SessionService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*CompleteLoginResult, error) {
	if input.Code == "" {
		return nil, apperrors.ValidationField("code", "authorization code is required")
	}
	if input.State == "" {
		return nil, apperrors.ValidationField("state", "state parameter is required")
	}
	if input.Nonce == "" {
		return nil, apperrors.ValidationField("nonce", "nonce parameter is required")
	}

	identity, err := s.provider.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnauthenticated, "exchange authorization code")
	}
	if identity.Subject == "" {
		return nil, apperrors.Unauthenticated("identity provider returned no subject")
	}

	now := s.now()
	sess := domainauth.Session{
		ID:          uuid.NewString(),
		PrincipalID: identity.Subject,
		Email:       identity.Email,
		IssuedAt:    now,
		ExpiresAt:   now.Add(s.ttl),
	}
	if err := s.issue(ctx, &sess); err != nil {
		return nil, err
	}

	s.publish(ctx, domainauth.EventSignedIn, sess)
	return &CompleteLoginResult{Session: sess, Identity: identity}, nil
}

// Current returns the live session behind a bearer token.
// Unknown, expired, rotated or malformed tokens yield an Unauthenticated error.
func (s *SessionService) Current(ctx context.Context, token string) (*domainauth.Session, error) {
	if token == "" {
		return nil, apperrors.Unauthenticated("no session token")
	}
	sid, pid, err := s.tokens.Verify(token)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnauthenticated, "invalid session token")
	}

	sess, err := s.store.Get(ctx, sid)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			return nil, apperrors.Unauthenticated("session not found")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeTransientIO, "load session")
	}
	if sess.PrincipalID != pid || sess.Token != token {
		return nil, apperrors.Unauthenticated("session token superseded")
	}
	if sess.Expired(s.now()) {
		if delErr := s.store.Delete(ctx, sid); delErr != nil {
			s.logger.WarnContext(ctx, "delete expired session", "session_id", sid, "error", delErr)
		}
		return nil, apperrors.Unauthenticated("session expired")
	}
	return &sess, nil
}

// Refresh extends a live session, rotates its token and publishes TokenRefreshed.
func (s *SessionService) Refresh(ctx context.Context, token string) (*domainauth.Session, error) {
	sess, err := s.Current(ctx, token)
	if err != nil {
		return nil, err
	}
	now := s.now()
	sess.IssuedAt = now
	sess.ExpiresAt = now.Add(s.ttl)
	if err := s.issue(ctx, sess); err != nil {
		return nil, err
	}
	s.publish(ctx, domainauth.EventTokenRefreshed, *sess)
	return sess, nil
}

// Logout removes the session behind token and publishes SignedOut.
// An unknown or invalid token is not an error.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	sid, pid, err := s.tokens.Verify(token)
	if err != nil {
		return nil
	}
	if err := s.store.Delete(ctx, sid); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.publish(ctx, domainauth.EventSignedOut, domainauth.Session{ID: sid, PrincipalID: pid})
	return nil
}

// RevokeAll signs a principal out everywhere. Stores without a per-principal index return an Internal error.
func (s *SessionService) RevokeAll(ctx context.Context, principalID string) (int, error) {
	revoker, ok := s.store.(sessionRevoker)
	if !ok {
		return 0, apperrors.Internal("session store cannot revoke by principal")
	}
	n, err := revoker.DeleteByPrincipal(ctx, principalID)
	if err != nil {
		return 0, fmt.Errorf("revoke sessions: %w", err)
	}
	if n > 0 {
		s.publish(ctx, domainauth.EventSignedOut, domainauth.Session{PrincipalID: principalID})
	}
	return n, nil
}

// Subscribe registers l for session events and returns a function that unregisters it.
// Listeners are called on the publishing goroutine and must not block.
func (s *SessionService) Subscribe(l ports.SessionListener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Run bridges events published by other processes to local listeners until ctx is done.
// Without a bus it returns immediately.
func (s *SessionService) Run(ctx context.Context) error {
	if s.bus == nil {
		return nil
	}
	return s.bus.Listen(ctx, func(ev domainauth.SessionEvent) {
		if ev.Origin == s.origin {
			return
		}
		s.deliver(ev)
	})
}

func (s *SessionService) issue(ctx context.Context, sess *domainauth.Session) error {
	token, err := s.tokens.Issue(*sess)
	if err != nil {
		return fmt.Errorf("issue session token: %w", err)
	}
	sess.Token = token
	if err := s.store.Save(ctx, *sess); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeTransientIO, "save session")
	}
	return nil
}

func (s *SessionService) publish(ctx context.Context, kind domainauth.EventKind, sess domainauth.Session) {
	ev := domainauth.SessionEvent{Kind: kind, Session: sess, At: s.now(), Origin: s.origin}
	s.deliver(ev)
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, ev); err != nil {
		s.logger.WarnContext(ctx, "publish session event", "kind", string(kind), "error", err)
	}
}

func (s *SessionService) deliver(ev domainauth.SessionEvent) {
	s.mu.RLock()
	ls := make([]ports.SessionListener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	s.mu.RUnlock()

	for _, l := range ls {
		l(ev)
	}
}
