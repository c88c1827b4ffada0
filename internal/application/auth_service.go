package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oksasatya/rupaykg-biomass/internal/domain/entity"
	"github.com/oksasatya/rupaykg-biomass/internal/domain/repository"
	"github.com/oksasatya/rupaykg-biomass/pkg/helpers"
)

type AuthService struct {
	deps   Deps
	tokens *helpers.TokenManager
}

func NewAuthService(d Deps, tokens *helpers.TokenManager) *AuthService {
	return &AuthService{deps: d.withDefaults(), tokens: tokens}
}

// Token is a signed session token and its expiry.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Register stores a new credential. Email uniqueness is not enforced.
func (s *AuthService) Register(ctx context.Context, email, password string, role entity.Role) error {
	if !role.Valid() {
		return fmt.Errorf("register: unknown role %q", role)
	}
	if len(password) > helpers.MaxPasswordBytes {
		return &InputError{Field: "password", Message: fmt.Sprintf("must be at most %d bytes", helpers.MaxPasswordBytes)}
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return fmt.Errorf("register: hash password: %w", err)
	}
	u := &entity.User{
		ID:        s.deps.NewID(),
		Email:     email,
		Password:  hash,
		Role:      role,
		CreatedAt: s.deps.Now(),
	}
	if err := s.deps.Store.Users().Create(ctx, u); err != nil {
		return storageErr("create user", err)
	}
	s.deps.Logger.WithField("email", email).WithField("role", role).Info("user registered")
	return nil
}

// Authenticate checks email/password against the earliest registration for email.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.deps.Store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storageErr("get user", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Login authenticates and issues a token with the email as subject.
func (s *AuthService) Login(ctx context.Context, email, password string) (Token, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return Token{}, err
	}
	tok, exp, err := s.tokens.Issue(u.Email, u.Role)
	if err != nil {
		s.deps.Logger.WithError(err).WithField("email", u.Email).Error("issue token failed")
		return Token{}, err
	}
	return Token{AccessToken: tok, ExpiresAt: exp}, nil
}

// Verify decodes a bearer token into the calling Principal.
func (s *AuthService) Verify(token string) (Principal, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return Principal{}, err
	}
	return Principal{Subject: claims.Subject, Role: claims.Role}, nil
}
