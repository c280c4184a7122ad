// Wellness Escape | 2026
// service.go

package user

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/wellnessescape/backend/internal/middleware"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ResolveIdentity loads the user's role and access flag fresh from storage,
// so grants and role changes take effect on the next request.
func (s *Service) ResolveIdentity(
	ctx context.Context,
	userID string,
) (*middleware.Identity, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &middleware.Identity{
		UserID:    u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		HasAccess: u.HasAccess,
	}, nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*UserWithRole, error) {
	return s.repo.GetByEmail(ctx, NormalizeEmail(email))
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*UserWithRole, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a new user. The caller supplies an already-hashed password;
// the email is normalized to lowercase so lookups stay case-insensitive.
func (s *Service) Create(
	ctx context.Context,
	email, passwordHash, name, role string,
	hasAccess bool,
) (*UserWithRole, error) {
	u := &User{
		ID:           uuid.New().String(),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Name:         name,
		HasAccess:    hasAccess,
	}

	if err := s.repo.Create(ctx, u, role); err != nil {
		return nil, err
	}

	return &UserWithRole{User: *u, Role: role}, nil
}

func (s *Service) GrantAccess(ctx context.Context, userID string) error {
	return s.repo.GrantAccess(ctx, userID)
}

func (s *Service) List(
	ctx context.Context,
	params ListUsersParams,
) ([]UserWithRole, int, error) {
	return s.repo.List(ctx, params)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ToUserResponse(u *UserWithRole) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		HasAccess: u.HasAccess,
		CreatedAt: u.CreatedAt,
	}
}
