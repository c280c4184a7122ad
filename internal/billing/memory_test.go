// Wellness Escape | 2026
// memory_test.go

package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellnessescape/backend/internal/core"
)

func TestMemoryRepositoryRejectsDuplicateCheckoutSession(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	first := &Purchase{
		ID:                      "p-1",
		UserID:                  "user-1",
		StripeCheckoutSessionID: "cs_test_1",
		Status:                  StatusPaid,
	}
	require.NoError(t, repo.Create(ctx, first))

	second := &Purchase{
		ID:                      "p-2",
		UserID:                  "user-2",
		StripeCheckoutSessionID: "cs_test_1",
		Status:                  StatusPaid,
	}
	assert.ErrorIs(t, repo.Create(ctx, second), core.ErrDuplicateKey)
}

func TestMemoryRepositoryListByUserNewestFirst(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	for _, cs := range []string{"cs_a", "cs_b"} {
		p := &Purchase{
			ID:                      cs,
			UserID:                  "user-1",
			StripeCheckoutSessionID: cs,
			Status:                  StatusPaid,
		}
		require.NoError(t, repo.Create(ctx, p))
	}

	other := &Purchase{
		ID:                      "p-other",
		UserID:                  "user-2",
		StripeCheckoutSessionID: "cs_other",
		Status:                  StatusPaid,
	}
	require.NoError(t, repo.Create(ctx, other))

	purchases, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, purchases, 2)
	for _, p := range purchases {
		assert.Equal(t, "user-1", p.UserID)
	}
}
