// Wellness Escape | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/wellnessescape/backend/internal/config"
	"github.com/wellnessescape/backend/internal/core"
	"github.com/wellnessescape/backend/internal/user"
)

var (
	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords so responses carry no enumeration signal.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

type Service struct {
	users *user.Service
	cfg   *config.Config
}

func NewService(users *user.Service, cfg *config.Config) *Service {
	return &Service{users: users, cfg: cfg}
}

// Register creates a user with a hashed password. Emails on the configured
// admin allow-list become admins with immediate program access; everyone
// else starts as a client behind the paywall.
func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*user.UserWithRole, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := user.RoleClient
	hasAccess := false
	if s.cfg.IsAdminEmail(req.Email) {
		role = user.RoleAdmin
		hasAccess = true
	}

	u, err := s.users.Create(ctx, req.Email, passwordHash, req.Name, role, hasAccess)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return u, nil
}

// Login verifies credentials. Unknown emails still pay for a full hash
// verification against a dummy hash.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*user.UserWithRole, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing equalization only
			_, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, err := core.VerifyPasswordTimingSafe(req.Password, &u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}
