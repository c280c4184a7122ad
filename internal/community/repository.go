// Wellness Escape | 2026
// repository.go

package community

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wellnessescape/backend/internal/core"
)

// PostFilter narrows the public feed. Zero values match everything.
type PostFilter struct {
	ProgramID string
	SessionID string
}

type Repository interface {
	CreatePost(ctx context.Context, p *Post) error
	// GetPost returns the post regardless of visibility; callers decide
	// whether hidden rows may be shown.
	GetPost(ctx context.Context, id string) (*PostWithAuthor, error)
	// ListPosts returns visible posts only, newest first.
	ListPosts(ctx context.Context, f PostFilter) ([]PostWithAuthor, error)
	SetPostHidden(ctx context.Context, id string, hidden bool) error

	CreateComment(ctx context.Context, c *Comment) error
	// ListComments returns visible comments on the post, oldest first.
	ListComments(ctx context.Context, postID string) ([]CommentWithAuthor, error)
	SetCommentHidden(ctx context.Context, id string, hidden bool) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) CreatePost(ctx context.Context, p *Post) error {
	query := `
		INSERT INTO community_posts (
			id, user_id, program_id, week_id, session_id, content
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		p.ID, p.UserID, p.ProgramID, p.WeekID, p.SessionID, p.Content)
	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("create post: %w", err)
	}

	return nil
}

func (r *repository) GetPost(
	ctx context.Context,
	id string,
) (*PostWithAuthor, error) {
	query := `
		SELECT p.id, p.user_id, p.program_id, p.week_id, p.session_id,
		       p.content, p.is_hidden, p.created_at, p.updated_at,
		       u.name AS author_name
		FROM community_posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1`

	var p PostWithAuthor
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get post: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	return &p, nil
}

func (r *repository) ListPosts(
	ctx context.Context,
	f PostFilter,
) ([]PostWithAuthor, error) {
	query := `
		SELECT p.id, p.user_id, p.program_id, p.week_id, p.session_id,
		       p.content, p.is_hidden, p.created_at, p.updated_at,
		       u.name AS author_name
		FROM community_posts p
		JOIN users u ON u.id = p.user_id
		WHERE NOT p.is_hidden
		  AND ($1 = '' OR p.program_id = $1::uuid)
		  AND ($2 = '' OR p.session_id = $2::uuid)
		ORDER BY p.created_at DESC`

	var posts []PostWithAuthor
	err := r.db.SelectContext(ctx, &posts, query, f.ProgramID, f.SessionID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return posts, nil
}

func (r *repository) SetPostHidden(
	ctx context.Context,
	id string,
	hidden bool,
) error {
	query := `
		UPDATE community_posts
		SET is_hidden = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, hidden)
	if err != nil {
		return fmt.Errorf("moderate post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("moderate post: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("moderate post: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) CreateComment(ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO comments (id, post_id, user_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		c.ID, c.PostID, c.UserID, c.Content)
	if err := row.Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}

func (r *repository) ListComments(
	ctx context.Context,
	postID string,
) ([]CommentWithAuthor, error) {
	query := `
		SELECT c.id, c.post_id, c.user_id, c.content, c.is_hidden,
		       c.created_at, c.updated_at, u.name AS author_name
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1 AND NOT c.is_hidden
		ORDER BY c.created_at ASC`

	var comments []CommentWithAuthor
	err := r.db.SelectContext(ctx, &comments, query, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return comments, nil
}

func (r *repository) SetCommentHidden(
	ctx context.Context,
	id string,
	hidden bool,
) error {
	query := `
		UPDATE comments
		SET is_hidden = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, hidden)
	if err != nil {
		return fmt.Errorf("moderate comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("moderate comment: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("moderate comment: %w", core.ErrNotFound)
	}

	return nil
}
