package service

import (
	"context"
	"time"

	"github.com/spec-kit/ticket-desk/internal/auth"
	"github.com/spec-kit/ticket-desk/internal/config"
	"github.com/spec-kit/ticket-desk/internal/domain"
	"github.com/spec-kit/ticket-desk/internal/repository"
	"github.com/spec-kit/ticket-desk/pkg/errorutil"
)

// AuthService coordinates login and estimation token issuance.
type AuthService struct {
	users    repository.UserRepository
	tokenMgr *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:    users,
		tokenMgr: auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
	}
}

// Login verifies credentials. Bad credentials produce an authentication
// error with a generic message; the unknown-email and wrong-password cases
// are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, ok, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return domain.User{}, err
	}
	if !ok {
		return domain.User{}, errorutil.NewAuthentication("Incorrect username or password")
	}
	return user, nil
}

// IssueEstimationToken signs a short-lived token embedding the user id.
func (s *AuthService) IssueEstimationToken(userID int64) (string, time.Time, error) {
	return s.tokenMgr.GenerateToken(userID)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
