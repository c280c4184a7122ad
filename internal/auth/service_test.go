// Wellness Escape | 2026
// service_test.go

package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellnessescape/backend/internal/config"
	"github.com/wellnessescape/backend/internal/user"
)

func newTestService(adminEmails ...string) *Service {
	cfg := &config.Config{}
	cfg.Auth.AdminEmails = adminEmails

	users := user.NewService(user.NewMemoryRepository())
	return NewService(users, cfg)
}

func TestRegisterThenLoginSameUser(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterRequest{
		Email:    "anna@example.com",
		Password: "longenough",
		Name:     "Anna",
	})
	require.NoError(t, err)
	assert.Equal(t, user.RoleClient, registered.Role)
	assert.False(t, registered.HasAccess)

	loggedIn, err := svc.Login(ctx, LoginRequest{
		Email:    "anna@example.com",
		Password: "longenough",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, loggedIn.ID)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterRequest{
		Email:    "Anna@Example.COM",
		Password: "longenough",
		Name:     "Anna",
	})
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", registered.Email)

	loggedIn, err := svc.Login(ctx, LoginRequest{
		Email:    "ANNA@example.com",
		Password: "longenough",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, loggedIn.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Email:    "anna@example.com",
		Password: "longenough",
		Name:     "Anna",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{
		Email:    "Anna@example.com",
		Password: "different-password",
		Name:     "Other Anna",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterAllowListedEmailBecomesAdmin(t *testing.T) {
	svc := newTestService("coach@example.com")
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterRequest{
		Email:    "Coach@Example.com",
		Password: "longenough",
		Name:     "Coach",
	})
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, registered.Role)
	assert.True(t, registered.HasAccess)
}

func TestLoginWrongPasswordAndUnknownEmailShareError(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Email:    "anna@example.com",
		Password: "longenough",
		Name:     "Anna",
	})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, LoginRequest{
		Email:    "anna@example.com",
		Password: "not-the-password",
	})
	_, unknownEmail := svc.Login(ctx, LoginRequest{
		Email:    "nobody@example.com",
		Password: "longenough",
	})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLoginDoesNotExposeStoredHash(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterRequest{
		Email:    "anna@example.com",
		Password: "longenough",
		Name:     "Anna",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "longenough", registered.PasswordHash)
	assert.NotEmpty(t, registered.PasswordHash)
}
