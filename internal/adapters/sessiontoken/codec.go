package sessiontoken

// Package sessiontoken signs session handles as HS256 JWTs.

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	domainauth "github.com/workvortex/vortex-api/internal/domain/auth"
	"github.com/workvortex/vortex-api/internal/ports"
)

const issuer = "vortex-api"

// ErrInvalidToken is returned for tokens that fail parsing, signature or claim checks.
var ErrInvalidToken = errors.New("invalid session token")

// Claims carries the session id in jti and the principal id in sub.
type Claims struct {
	jwt.RegisteredClaims
}

// Codec implements ports.TokenCodec.
type Codec struct {
	secret []byte
	now    func() time.Time
}

var _ ports.TokenCodec = (*Codec)(nil)

// NewCodec creates a Codec; the secret must be at least 32 bytes.
func NewCodec(secret []byte) (*Codec, error) {
	if len(secret) < 32 {
		return nil, errors.New("session token secret must be at least 32 bytes")
	}
	return &Codec{secret: append([]byte(nil), secret...), now: time.Now}, nil
}

func (c *Codec) Issue(sess domainauth.Session) (string, error) {
	if sess.ID == "" || sess.PrincipalID == "" {
		return "", errors.New("session id and principal id are required")
	}
	issuedAt := sess.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = c.now()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			Subject:   sess.PrincipalID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (c *Codec) Verify(token string) (string, string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.ID == "" || claims.Subject == "" {
		return "", "", ErrInvalidToken
	}
	return claims.ID, claims.Subject, nil
}
