package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/oksasatya/rupaykg-biomass/internal/domain/entity"
)

// ErrInvalidOrExpiredToken covers every reason a token is rejected: bad
// signature, wrong algorithm, malformed payload, or an exp in the past.
var ErrInvalidOrExpiredToken = errors.New("invalid or expired token")

// DefaultAccessTTL is the session length when none is configured.
const DefaultAccessTTL = 1440 * time.Minute

// TokenManager issues and verifies HS256 session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type TokenOption func(*TokenManager)

// WithClock overrides the time source used for iat/exp and for verification.
func WithClock(now func() time.Time) TokenOption {
	return func(m *TokenManager) { m.now = now }
}

func NewTokenManager(secret string, ttl time.Duration, opts ...TokenOption) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultAccessTTL
	}
	m := &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Claims carries the subject (the user's email) and role. There is no
// session id or refresh counter; tokens live for their full TTL.
type Claims struct {
	Role entity.Role `json:"role"`
	jwt.RegisteredClaims
}

func (m *TokenManager) TTL() time.Duration { return m.ttl }

// Issue signs a token for subject/role expiring TTL after now.
func (m *TokenManager) Issue(subject string, role entity.Role) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	return s, exp, err
}

// Verify parses tokenStr and returns its claims. Any failure is reported as
// ErrInvalidOrExpiredToken.
func (m *TokenManager) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidOrExpiredToken
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return nil, ErrInvalidOrExpiredToken
	}
	return claims, nil
}
