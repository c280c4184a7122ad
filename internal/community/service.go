// Wellness Escape | 2026
// service.go

package community

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wellnessescape/backend/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListPosts(
	ctx context.Context,
	f PostFilter,
) ([]PostWithAuthor, error) {
	return s.repo.ListPosts(ctx, f)
}

func (s *Service) CreatePost(
	ctx context.Context,
	userID string,
	req CreatePostRequest,
) (*PostWithAuthor, error) {
	p := &Post{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProgramID: req.ProgramID,
		WeekID:    req.WeekID,
		SessionID: req.SessionID,
		Content:   req.Content,
	}

	if err := s.repo.CreatePost(ctx, p); err != nil {
		return nil, err
	}

	return s.repo.GetPost(ctx, p.ID)
}

// ListComments returns visible comments on a visible post. Comments on a
// hidden post read as a missing post.
func (s *Service) ListComments(
	ctx context.Context,
	postID string,
) ([]CommentWithAuthor, error) {
	p, err := s.repo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.IsHidden {
		return nil, fmt.Errorf("get post: %w", core.ErrNotFound)
	}

	return s.repo.ListComments(ctx, postID)
}

func (s *Service) CreateComment(
	ctx context.Context,
	userID, postID string,
	req CreateCommentRequest,
) (*Comment, error) {
	p, err := s.repo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.IsHidden {
		return nil, fmt.Errorf("get post: %w", core.ErrNotFound)
	}

	c := &Comment{
		ID:      uuid.New().String(),
		PostID:  postID,
		UserID:  userID,
		Content: req.Content,
	}

	if err := s.repo.CreateComment(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) ModeratePost(
	ctx context.Context,
	id string,
	hidden bool,
) error {
	return s.repo.SetPostHidden(ctx, id, hidden)
}

func (s *Service) ModerateComment(
	ctx context.Context,
	id string,
	hidden bool,
) error {
	return s.repo.SetCommentHidden(ctx, id, hidden)
}
