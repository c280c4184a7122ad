// Wellness Escape | 2026
// memory.go

package community

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/wellnessescape/backend/internal/core"
)

// NameLookup resolves a user id to a display name. The degraded-mode backend
// needs it because there is no join to lean on.
type NameLookup func(ctx context.Context, userID string) (string, error)

// MemoryRepository is the degraded-mode backend used when no database is
// configured.
type MemoryRepository struct {
	mu       sync.RWMutex
	posts    map[string]Post
	comments map[string]Comment
	names    NameLookup
}

func NewMemoryRepository(names NameLookup) *MemoryRepository {
	return &MemoryRepository{
		posts:    make(map[string]Post),
		comments: make(map[string]Comment),
		names:    names,
	}
}

func (r *MemoryRepository) authorName(ctx context.Context, userID string) string {
	name, err := r.names(ctx, userID)
	if err != nil {
		return "Member"
	}
	return name
}

func (r *MemoryRepository) CreatePost(_ context.Context, p *Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.posts[p.ID] = *p

	return nil
}

func (r *MemoryRepository) GetPost(
	ctx context.Context,
	id string,
) (*PostWithAuthor, error) {
	r.mu.RLock()
	p, ok := r.posts[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("get post: %w", core.ErrNotFound)
	}

	return &PostWithAuthor{
		Post:       p,
		AuthorName: r.authorName(ctx, p.UserID),
	}, nil
}

func (r *MemoryRepository) ListPosts(
	ctx context.Context,
	f PostFilter,
) ([]PostWithAuthor, error) {
	r.mu.RLock()
	matched := make([]Post, 0, len(r.posts))
	for _, p := range r.posts {
		if p.IsHidden {
			continue
		}
		if f.ProgramID != "" &&
			(p.ProgramID == nil || *p.ProgramID != f.ProgramID) {
			continue
		}
		if f.SessionID != "" &&
			(p.SessionID == nil || *p.SessionID != f.SessionID) {
			continue
		}
		matched = append(matched, p)
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	out := make([]PostWithAuthor, 0, len(matched))
	for _, p := range matched {
		out = append(out, PostWithAuthor{
			Post:       p,
			AuthorName: r.authorName(ctx, p.UserID),
		})
	}

	return out, nil
}

func (r *MemoryRepository) SetPostHidden(
	_ context.Context,
	id string,
	hidden bool,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return fmt.Errorf("moderate post: %w", core.ErrNotFound)
	}

	p.IsHidden = hidden
	p.UpdatedAt = time.Now()
	r.posts[id] = p

	return nil
}

func (r *MemoryRepository) CreateComment(_ context.Context, c *Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[c.PostID]; !ok {
		return fmt.Errorf("create comment: %w", core.ErrNotFound)
	}

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	r.comments[c.ID] = *c

	return nil
}

func (r *MemoryRepository) ListComments(
	ctx context.Context,
	postID string,
) ([]CommentWithAuthor, error) {
	r.mu.RLock()
	matched := make([]Comment, 0)
	for _, c := range r.comments {
		if c.PostID == postID && !c.IsHidden {
			matched = append(matched, c)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	out := make([]CommentWithAuthor, 0, len(matched))
	for _, c := range matched {
		out = append(out, CommentWithAuthor{
			Comment:    c,
			AuthorName: r.authorName(ctx, c.UserID),
		})
	}

	return out, nil
}

func (r *MemoryRepository) SetCommentHidden(
	_ context.Context,
	id string,
	hidden bool,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.comments[id]
	if !ok {
		return fmt.Errorf("moderate comment: %w", core.ErrNotFound)
	}

	c.IsHidden = hidden
	c.UpdatedAt = time.Now()
	r.comments[id] = c

	return nil
}
