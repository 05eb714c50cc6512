package sessiontoken

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/workvortex/vortex-api/internal/domain/auth"
)

var testSecret = []byte(strings.Repeat("k", 32))

func TestCodec_IssueVerify(t *testing.T) {
	t.Parallel()

	c, err := NewCodec(testSecret)
	require.NoError(t, err)

	now := time.Now()
	tok, err := c.Issue(domainauth.Session{ID: "sess-1", PrincipalID: "acct-1", IssuedAt: now, ExpiresAt: now.Add(time.Hour)})
	require.NoError(t, err)

	sid, pid, err := c.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", sid)
	assert.Equal(t, "acct-1", pid)
}

func TestCodec_VerifyRejects(t *testing.T) {
	t.Parallel()

	c, err := NewCodec(testSecret)
	require.NoError(t, err)
	now := time.Now()

	expired, err := c.Issue(domainauth.Session{ID: "s", PrincipalID: "p", IssuedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)})
	require.NoError(t, err)

	other, err := NewCodec([]byte(strings.Repeat("z", 32)))
	require.NoError(t, err)
	foreign, err := other.Issue(domainauth.Session{ID: "s", PrincipalID: "p", ExpiresAt: now.Add(time.Hour)})
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{RegisteredClaims: jwt.RegisteredClaims{
		ID: "s", Subject: "p", Issuer: issuer, ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"expired":   expired,
		"foreign":   foreign,
		"alg none":  unsigned,
		"malformed": "not-a-jwt",
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := c.Verify(tok)
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewCodec_ShortSecret(t *testing.T) {
	t.Parallel()
	_, err := NewCodec([]byte("short"))
	require.Error(t, err)

	c, err := NewCodec(testSecret)
	require.NoError(t, err)
	_, err = c.Issue(domainauth.Session{ID: "only-id"})
	require.Error(t, err)
}
