// Wellness Escape | 2026
// service_test.go

package program

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellnessescape/backend/internal/core"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }

func seedProgram(t *testing.T, svc *Service) (*Program, *Week, *Session) {
	t.Helper()
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateProgramRequest{
		Title:            "8-Week Reset",
		ShortDescription: strPtr("A guided reset"),
	})
	require.NoError(t, err)

	w, err := svc.CreateWeek(ctx, p.ID, CreateWeekRequest{
		WeekNumber: 1,
		Title:      "Grounding",
	})
	require.NoError(t, err)

	s, err := svc.CreateSession(ctx, w.ID, CreateSessionRequest{
		OrderIndex: 1,
		Title:      "Morning breathwork",
	})
	require.NoError(t, err)

	return p, w, s
}

func TestGetDetailNestsWeeksAndSessions(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	p, w, s := seedProgram(t, svc)

	detail, err := svc.GetDetail(context.Background(), p.ID, false)
	require.NoError(t, err)

	assert.Equal(t, "8-Week Reset", detail.Title)
	require.Len(t, detail.Weeks, 1)
	assert.Equal(t, w.ID, detail.Weeks[0].ID)
	require.Len(t, detail.Weeks[0].Sessions, 1)
	assert.Equal(t, s.ID, detail.Weeks[0].Sessions[0].ID)
}

func TestGetDetailHidesInactiveSessionsFromPublic(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	p, _, s := seedProgram(t, svc)
	ctx := context.Background()

	_, err := svc.UpdateSession(ctx, s.ID, UpdateSessionRequest{
		IsActive: boolPtr(false),
	})
	require.NoError(t, err)

	detail, err := svc.GetDetail(ctx, p.ID, false)
	require.NoError(t, err)
	assert.Empty(t, detail.Weeks[0].Sessions)

	adminDetail, err := svc.GetDetail(ctx, p.ID, true)
	require.NoError(t, err)
	assert.Len(t, adminDetail.Weeks[0].Sessions, 1)
}

func TestInactiveProgramHiddenFromPublicListing(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	p, _, _ := seedProgram(t, svc)
	ctx := context.Background()

	_, err := svc.Update(ctx, p.ID, UpdateProgramRequest{
		IsActive: boolPtr(false),
	})
	require.NoError(t, err)

	public, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, public)

	admin, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, admin, 1)

	_, err = svc.GetDetail(ctx, p.ID, false)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateProgramAppliesPartialPatch(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	p, _, _ := seedProgram(t, svc)

	updated, err := svc.Update(context.Background(), p.ID, UpdateProgramRequest{
		Title: strPtr("8-Week Reset, Revised"),
	})
	require.NoError(t, err)

	assert.Equal(t, "8-Week Reset, Revised", updated.Title)
	require.NotNil(t, updated.ShortDescription)
	assert.Equal(t, "A guided reset", *updated.ShortDescription)
}

func TestUpdateSessionAppliesPartialPatch(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	_, _, s := seedProgram(t, svc)

	updated, err := svc.UpdateSession(
		context.Background(), s.ID, UpdateSessionRequest{
			DurationMinutes: intPtr(25),
		})
	require.NoError(t, err)

	assert.Equal(t, "Morning breathwork", updated.Title)
	require.NotNil(t, updated.DurationMinutes)
	assert.Equal(t, 25, *updated.DurationMinutes)
}

func TestCheckInRecordsCompletion(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	p, w, s := seedProgram(t, svc)
	ctx := context.Background()

	c, err := svc.CheckIn(ctx, "user-1", CreateCheckInRequest{
		ProgramID: p.ID,
		WeekID:    w.ID,
		SessionID: s.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, s.ID, c.SessionID)

	checkIns, err := svc.ListCheckIns(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, checkIns, 1)

	other, err := svc.ListCheckIns(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestCheckInRejectsMismatchedHierarchy(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	p, w, s := seedProgram(t, svc)
	ctx := context.Background()

	otherWeek, err := svc.CreateWeek(ctx, p.ID, CreateWeekRequest{
		WeekNumber: 2,
		Title:      "Momentum",
	})
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, "user-1", CreateCheckInRequest{
		ProgramID: p.ID,
		WeekID:    otherWeek.ID,
		SessionID: s.ID,
	})
	assert.ErrorIs(t, err, ErrMismatchedSession)

	_, err = svc.CheckIn(ctx, "user-1", CreateCheckInRequest{
		ProgramID: p.ID,
		WeekID:    w.ID,
		SessionID: "missing-session",
	})
	assert.ErrorIs(t, err, core.ErrNotFound)
}
