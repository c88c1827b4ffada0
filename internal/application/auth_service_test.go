package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/rupaykg-biomass/internal/domain/entity"
	"github.com/oksasatya/rupaykg-biomass/internal/domain/repository"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	require.NoError(t, s.auth.Register(ctx, "a@x.com", "pw", entity.RoleAggregator))

	u, err := s.store.Users().GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", u.Password, "password is stored hashed")
	assert.NotEmpty(t, u.ID)

	tok, err := s.auth.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, tok.AccessToken)

	p, err := s.auth.Verify(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, Principal{Subject: "a@x.com", Role: entity.RoleAggregator}, p)
}

func TestAuthService_LoginFailures(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	require.NoError(t, s.auth.Register(ctx, "a@x.com", "pw", entity.RoleAggregator))

	_, err := s.auth.Login(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.auth.Login(ctx, "nobody@x.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_DuplicateRegistrationIsStored(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	require.NoError(t, s.auth.Register(ctx, "a@x.com", "first", entity.RoleAggregator))
	require.NoError(t, s.auth.Register(ctx, "a@x.com", "second", entity.RoleAdmin))

	tok, err := s.auth.Login(ctx, "a@x.com", "first")
	require.NoError(t, err)
	p, err := s.auth.Verify(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAggregator, p.Role, "the earliest registration wins")

	_, err = s.auth.Login(ctx, "a@x.com", "second")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RegisterRejectsUnknownRole(t *testing.T) {
	s := newServices(t)
	err := s.auth.Register(context.Background(), "a@x.com", "pw", entity.Role("root"))
	assert.Error(t, err)

	_, err = s.store.Users().GetByEmail(context.Background(), "a@x.com")
	assert.Error(t, err)
}

func TestAuthService_VerifyRejectsGarbage(t *testing.T) {
	s := newServices(t)
	_, err := s.auth.Verify("nope")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestAuthService_StorageFailure(t *testing.T) {
	s := newServices(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.auth.Register(ctx, "a@x.com", "pw", entity.RoleAggregator)
	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = s.auth.Login(ctx, "a@x.com", "pw")
	require.ErrorAs(t, err, &se)
}

func TestAuthService_RegisterRejectsPasswordOverBcryptLimit(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	// 40 runes, 80 bytes
	long := strings.Repeat("é", 40)
	err := s.auth.Register(ctx, "a@x.com", long, entity.RoleBuyer)
	var ie *InputError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "password", ie.Field)

	_, err = s.store.Users().GetByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, s.auth.Register(ctx, "b@x.com", strings.Repeat("é", 36), entity.RoleBuyer))
}
