package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/skytrip/flightcrm/internal/auth"
	"github.com/skytrip/flightcrm/internal/domain"
	"github.com/skytrip/flightcrm/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Register(ctx context.Context, username, password string) (*domain.TokenPair, error)
	Login(ctx context.Context, username, password string) (*domain.TokenPair, error)
}

type AuthService struct {
	admins repository.AdminRepository
	tokens *auth.TokenManager
}

func NewAuthService(admins repository.AdminRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{admins: admins, tokens: tokens}
}

func validateCredentials(username, password string) error {
	verr := domain.NewValidationError()
	if strings.TrimSpace(username) == "" {
		verr.Add("username", "username is required")
	} else if len(username) > 150 {
		verr.Add("username", "username must be at most 150 characters")
	}
	if password == "" {
		verr.Add("password", "password is required")
	} else if len(password) < 8 {
		verr.Add("password", "password must be at least 8 characters")
	}
	if !verr.Empty() {
		return verr
	}
	return nil
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &domain.AdminUser{Username: username, HashedPassword: string(digest)}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}

	return s.issueTokens(username)
}

// authenticate fails closed: an unknown username and a wrong password are
// indistinguishable to the caller.
func (s *AuthService) authenticate(ctx context.Context, username, password string) bool {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(admin.HashedPassword), []byte(password)) == nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !s.authenticate(ctx, username, password) {
		return nil, domain.ErrInvalidCredentials
	}
	return s.issueTokens(username)
}

func (s *AuthService) issueTokens(username string) (*domain.TokenPair, error) {
	access, err := s.tokens.Sign(username)
	if err != nil {
		return nil, errors.New("failed to issue token")
	}
	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: uuid.NewString(),
		TokenType:    "bearer",
	}, nil
}

var _ AuthUseCase = (*AuthService)(nil)
