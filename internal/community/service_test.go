// Wellness Escape | 2026
// service_test.go

package community

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellnessescape/backend/internal/core"
)

func testNames(_ context.Context, userID string) (string, error) {
	if userID == "user-1" {
		return "Anna", nil
	}
	return "", core.ErrNotFound
}

func TestCreatePostCarriesAuthorName(t *testing.T) {
	svc := NewService(NewMemoryRepository(testNames))

	post, err := svc.CreatePost(context.Background(), "user-1",
		CreatePostRequest{Content: "Loved this week's session."})
	require.NoError(t, err)
	assert.Equal(t, "Anna", post.AuthorName)
}

func TestHiddenPostsFilteredFromFeed(t *testing.T) {
	svc := NewService(NewMemoryRepository(testNames))
	ctx := context.Background()

	visible, err := svc.CreatePost(ctx, "user-1",
		CreatePostRequest{Content: "Visible post."})
	require.NoError(t, err)

	hidden, err := svc.CreatePost(ctx, "user-1",
		CreatePostRequest{Content: "Soon to be hidden."})
	require.NoError(t, err)

	require.NoError(t, svc.ModeratePost(ctx, hidden.ID, true))

	posts, err := svc.ListPosts(ctx, PostFilter{})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, visible.ID, posts[0].ID)
}

func TestModerationIsReversible(t *testing.T) {
	svc := NewService(NewMemoryRepository(testNames))
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "user-1",
		CreatePostRequest{Content: "Flickering."})
	require.NoError(t, err)

	require.NoError(t, svc.ModeratePost(ctx, post.ID, true))
	require.NoError(t, svc.ModeratePost(ctx, post.ID, false))

	posts, err := svc.ListPosts(ctx, PostFilter{})
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestCommentsOnHiddenPostReadAsMissing(t *testing.T) {
	svc := NewService(NewMemoryRepository(testNames))
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "user-1",
		CreatePostRequest{Content: "About to vanish."})
	require.NoError(t, err)

	_, err = svc.CreateComment(ctx, "user-1", post.ID,
		CreateCommentRequest{Content: "First!"})
	require.NoError(t, err)

	require.NoError(t, svc.ModeratePost(ctx, post.ID, true))

	_, err = svc.ListComments(ctx, post.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = svc.CreateComment(ctx, "user-1", post.ID,
		CreateCommentRequest{Content: "Anyone here?"})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestHiddenCommentsFiltered(t *testing.T) {
	svc := NewService(NewMemoryRepository(testNames))
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "user-1",
		CreatePostRequest{Content: "Discussion thread."})
	require.NoError(t, err)

	keep, err := svc.CreateComment(ctx, "user-1", post.ID,
		CreateCommentRequest{Content: "Kind words."})
	require.NoError(t, err)

	toxic, err := svc.CreateComment(ctx, "user-1", post.ID,
		CreateCommentRequest{Content: "Unkind words."})
	require.NoError(t, err)

	require.NoError(t, svc.ModerateComment(ctx, toxic.ID, true))

	comments, err := svc.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, keep.ID, comments[0].ID)
}

func TestPostFilterBySession(t *testing.T) {
	svc := NewService(NewMemoryRepository(testNames))
	ctx := context.Background()

	sessionID := "7e4f4d1c-9a6e-4f31-bb6e-2f5a8f7f1b2d"
	_, err := svc.CreatePost(ctx, "user-1", CreatePostRequest{
		SessionID: &sessionID,
		Content:   "Session-specific reflection.",
	})
	require.NoError(t, err)

	_, err = svc.CreatePost(ctx, "user-1",
		CreatePostRequest{Content: "General post."})
	require.NoError(t, err)

	filtered, err := svc.ListPosts(ctx, PostFilter{SessionID: sessionID})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.NotNil(t, filtered[0].SessionID)
	assert.Equal(t, sessionID, *filtered[0].SessionID)

	all, err := svc.ListPosts(ctx, PostFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
