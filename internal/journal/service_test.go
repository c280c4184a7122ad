// Wellness Escape | 2026
// service_test.go

package journal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellnessescape/backend/internal/core"
)

func strPtr(s string) *string { return &s }

func TestCreateAndListOwnEntries(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	mine, err := svc.Create(ctx, "user-1", CreateEntryRequest{
		Title: "Day one",
		Body:  "Slept better than expected.",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, "user-2", CreateEntryRequest{
		Title: "Not yours",
		Body:  "Private thoughts.",
	})
	require.NoError(t, err)

	entries, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, mine.ID, entries[0].ID)
}

func TestEntriesAreOwnerScoped(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	entry, err := svc.Create(ctx, "user-1", CreateEntryRequest{
		Title: "Mine",
		Body:  "Only I can read this.",
	})
	require.NoError(t, err)

	// Another user sees someone else's entry as missing, for reads and
	// writes alike.
	_, err = svc.Get(ctx, "user-2", entry.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = svc.Update(ctx, "user-2", entry.ID, UpdateEntryRequest{
		Body: strPtr("hijacked"),
	})
	assert.ErrorIs(t, err, core.ErrNotFound)

	err = svc.Delete(ctx, "user-2", entry.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	got, err := svc.Get(ctx, "user-1", entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Only I can read this.", got.Body)
}

func TestUpdateAppliesPartialPatch(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	entry, err := svc.Create(ctx, "user-1", CreateEntryRequest{
		Title: "Draft",
		Body:  "First pass.",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "user-1", entry.ID, UpdateEntryRequest{
		Body: strPtr("Second pass."),
	})
	require.NoError(t, err)

	assert.Equal(t, "Draft", updated.Title)
	assert.Equal(t, "Second pass.", updated.Body)
}

func TestDeleteRemovesEntry(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	entry, err := svc.Create(ctx, "user-1", CreateEntryRequest{
		Title: "Ephemeral",
		Body:  "Gone soon.",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "user-1", entry.ID))

	_, err = svc.Get(ctx, "user-1", entry.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	err = svc.Delete(ctx, "user-1", entry.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
