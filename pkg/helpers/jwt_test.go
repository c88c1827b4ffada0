package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/rupaykg-biomass/internal/domain/entity"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestTokenManager(clock *fakeClock) *TokenManager {
	return NewTokenManager("test-secret", DefaultAccessTTL, WithClock(clock.Now))
}

func TestNewTokenManager_DefaultsTTL(t *testing.T) {
	m := NewTokenManager("s", 0)
	assert.Equal(t, 1440*time.Minute, m.TTL())
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)}
	m := newTestTokenManager(clock)

	for _, role := range entity.Roles() {
		t.Run(role.String(), func(t *testing.T) {
			tok, exp, err := m.Issue("a@x.com", role)
			require.NoError(t, err)
			assert.Equal(t, clock.t.Add(1440*time.Minute), exp)

			claims, err := m.Verify(tok)
			require.NoError(t, err)
			assert.Equal(t, "a@x.com", claims.Subject)
			assert.Equal(t, role, claims.Role)
		})
	}
}

func TestVerify_Expiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)}
	m := newTestTokenManager(clock)
	issuedAt := clock.t

	tok, _, err := m.Issue("a@x.com", entity.RoleAggregator)
	require.NoError(t, err)

	clock.t = issuedAt.Add(1439 * time.Minute)
	_, err = m.Verify(tok)
	require.NoError(t, err)

	clock.t = issuedAt.Add(1441 * time.Minute)
	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestVerify_Rejects(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	m := newTestTokenManager(clock)
	valid, _, err := m.Issue("a@x.com", entity.RoleAdmin)
	require.NoError(t, err)

	other := NewTokenManager("other-secret", DefaultAccessTTL, WithClock(clock.Now))
	foreign, _, err := other.Issue("a@x.com", entity.RoleAdmin)
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		Role:             entity.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "a@x.com", ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour))},
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Role:             entity.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "a@x.com"},
	})
	noExpTok, err := noExp.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	badRole := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Role:             entity.Role("superuser"),
		RegisteredClaims: jwt.RegisteredClaims{Subject: "a@x.com", ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour))},
	})
	badRoleTok, err := badRole.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	cases := map[string]string{
		"empty":          "",
		"garbage":        "not-a-token",
		"wrong secret":   foreign,
		"tampered":       tampered,
		"alg none":       unsigned,
		"missing exp":    noExpTok,
		"role not known": badRoleTok,
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := m.Verify(tok)
			assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
		})
	}
}
