package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOAuth uses OAuth/OIDC for authentication.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// OAuthConfig contains OAuth/OIDC configuration.
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email phone"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// IsComplete reports whether every field the OIDC provider needs is set.
func (c OAuthConfig) IsComplete() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.DiscoveryURL != "" && c.RedirectURL != ""
}

// DevAuthConfig controls the mock identity used when AUTH_MODE=mock.
type DevAuthConfig struct {
	Subject string `env:"SUBJECT" envDefault:"dev-candidate"`
	Email   string `env:"EMAIL"   envDefault:"dev@example.com"`
	Name    string `env:"NAME"    envDefault:"Dev Candidate"`
	Phone   string `env:"PHONE"   envDefault:"555-0100"`
}

// SessionConfig controls issued sessions and their cross-process fan-out.
type SessionConfig struct {
	TTL time.Duration `env:"TTL" envDefault:"12h"`
	// SigningKey signs session tokens. Must be at least 32 bytes.
	SigningKey   string `env:"SIGNING_KEY"`
	KeyPrefix    string `env:"KEY_PREFIX"    envDefault:"session:"`
	EventChannel string `env:"EVENT_CHANNEL" envDefault:"vortex:session-events"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// OAuth configuration (used when Mode=oauth).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	Session SessionConfig `envPrefix:"SESSION_"`
}

// Sanitize trims identity values and restores a usable session TTL.
func (c *AuthConfig) Sanitize() {
	c.OAuth.ClientID = strings.TrimSpace(c.OAuth.ClientID)
	c.OAuth.DiscoveryURL = strings.TrimSpace(c.OAuth.DiscoveryURL)
	c.OAuth.RedirectURL = strings.TrimSpace(c.OAuth.RedirectURL)
	c.DevAuth.Subject = strings.TrimSpace(c.DevAuth.Subject)
	c.DevAuth.Email = strings.TrimSpace(c.DevAuth.Email)
	if c.Session.TTL <= 0 {
		c.Session.TTL = 12 * time.Hour
	}
	if c.Session.KeyPrefix = strings.TrimSpace(c.Session.KeyPrefix); c.Session.KeyPrefix == "" {
		c.Session.KeyPrefix = "session:"
	}
	c.Session.EventChannel = strings.TrimSpace(c.Session.EventChannel)
}
