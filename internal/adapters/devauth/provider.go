package devauth

// Package devauth provides a simple, config-driven AuthProvider for local development.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	domainauth "github.com/workvortex/vortex-api/internal/domain/auth"
	"github.com/workvortex/vortex-api/internal/ports"
)

// Config controls the dev auth provider behavior.
// Subject and Email are required; Name falls back to Email.
type Config struct {
	Subject         string
	Email           string
	Name            string
	Phone           string
	SessionDuration time.Duration // default 8h when zero
}

// Provider implements ports.AuthProvider for local development.
// Begin short-circuits the OAuth flow by pointing straight at our own callback,
// and Exchange ignores the code and returns the configured identity.
type Provider struct {
	mu              sync.Mutex
	identity        domainauth.Identity
	sessionDuration time.Duration
	now             func() time.Time
}

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.Subject == "" {
		return nil, errors.New("dev auth: Subject is required")
	}
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	dur := cfg.SessionDuration
	if dur == 0 {
		dur = 8 * time.Hour
	}
	name := cfg.Name
	if name == "" {
		name = cfg.Email
	}
	p := &Provider{sessionDuration: dur, now: time.Now}
	p.identity = domainauth.Identity{
		Subject:   cfg.Subject,
		Name:      name,
		Email:     cfg.Email,
		Phone:     cfg.Phone,
		ExpiresAt: p.now().Add(dur),
	}
	return p, nil
}

// Begin returns a local callback URL and cryptographically secure state and nonce.
func (p *Provider) Begin(_ context.Context, _ ports.BeginInput) (string, string, string, error) {
	state, err := randomString(24)
	if err != nil {
		return "", "", "", fmt.Errorf("generate state: %w", err)
	}
	nonce, err := randomString(24)
	if err != nil {
		return "", "", "", fmt.Errorf("generate nonce: %w", err)
	}
	return "/auth/callback?code=dev&state=" + state, state, nonce, nil
}

// Exchange returns the dev identity, extending its expiry when it is close to lapsing.
func (p *Provider) Exchange(_ context.Context, _ ports.ExchangeInput) (domainauth.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.now()
	if p.identity.ExpiresAt.Sub(now) < 5*time.Minute {
		p.identity.ExpiresAt = now.Add(p.sessionDuration)
	}
	return p.identity, nil
}

func randomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	b := make([]byte, (n*3+3)/4+1)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b)[:n], nil
}
