// Wellness Escape | 2026
// memory_test.go

package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellnessescape/backend/internal/core"
)

func TestMemoryRepositoryRejectsDuplicateEmail(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	first := &User{ID: "u-1", Email: "anna@example.com", Name: "Anna"}
	require.NoError(t, repo.Create(ctx, first, RoleClient))

	second := &User{ID: "u-2", Email: "anna@example.com", Name: "Imposter"}
	assert.ErrorIs(t, repo.Create(ctx, second, RoleClient), core.ErrDuplicateKey)
}

func TestMemoryRepositoryGrantAccess(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	u := &User{ID: "u-1", Email: "anna@example.com", Name: "Anna"}
	require.NoError(t, repo.Create(ctx, u, RoleClient))

	require.NoError(t, repo.GrantAccess(ctx, "u-1"))
	// Granting twice is a no-op.
	require.NoError(t, repo.GrantAccess(ctx, "u-1"))

	got, err := repo.GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.True(t, got.HasAccess)

	assert.ErrorIs(t, repo.GrantAccess(ctx, "ghost"), core.ErrNotFound)
}

func TestMemoryRepositoryGetByEmail(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	u := &User{ID: "u-1", Email: "anna@example.com", Name: "Anna"}
	require.NoError(t, repo.Create(ctx, u, RoleAdmin))

	got, err := repo.GetByEmail(ctx, "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
	assert.Equal(t, RoleAdmin, got.Role)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestMemoryRepositoryListSearchAndPaging(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	users := []*User{
		{ID: "u-1", Email: "anna@example.com", Name: "Anna"},
		{ID: "u-2", Email: "ben@example.com", Name: "Ben"},
		{ID: "u-3", Email: "carla@example.com", Name: "Carla"},
	}
	for _, u := range users {
		require.NoError(t, repo.Create(ctx, u, RoleClient))
	}

	matched, total, err := repo.List(ctx, ListUsersParams{Search: "ann"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, matched, 1)
	assert.Equal(t, "anna@example.com", matched[0].Email)

	_, total, err = repo.List(ctx, ListUsersParams{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	paged, total, err := repo.List(ctx, ListUsersParams{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, paged, 2)
}
