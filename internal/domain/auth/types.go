package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Identity represents the authenticated user returned by an IdP.
// Adapters map provider-specific claims into this shape.
type Identity struct {
	Subject   string // stable IdP subject; becomes the account id
	Name      string
	Email     string
	Phone     string
	ExpiresAt time.Time // absolute expiry from IdP token
}

// Session is the opaque handle issued by the session provider.
// ID is the server-side key; Token is the signed bearer form handed to clients.
type Session struct {
	ID          string    `json:"id"`
	PrincipalID string    `json:"principal_id"`
	Email       string    `json:"email"`
	Token       string    `json:"token,omitempty"`
	IssuedAt    time.Time `json:"issued_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// EventKind enumerates session lifecycle transitions.
type EventKind string

const (
	EventSignedIn       EventKind = "signed_in"
	EventTokenRefreshed EventKind = "token_refreshed"
	EventSignedOut      EventKind = "signed_out"
)

// Valid reports whether k is a known event kind.
func (k EventKind) Valid() bool {
	switch k {
	case EventSignedIn, EventTokenRefreshed, EventSignedOut:
		return true
	default:
		return false
	}
}

// SessionEvent is published whenever a session changes state.
// Session is the zero value for EventSignedOut except for ID and PrincipalID.
// Origin identifies the publishing process so bridged events are not delivered twice.
type SessionEvent struct {
	Kind    EventKind `json:"kind"`
	Session Session   `json:"session"`
	At      time.Time `json:"at"`
	Origin  string    `json:"origin,omitempty"`
}
