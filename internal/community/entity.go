// Wellness Escape | 2026
// entity.go

package community

import (
	"time"
)

type Post struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	ProgramID *string   `db:"program_id"`
	WeekID    *string   `db:"week_id"`
	SessionID *string   `db:"session_id"`
	Content   string    `db:"content"`
	IsHidden  bool      `db:"is_hidden"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Comment struct {
	ID        string    `db:"id"`
	PostID    string    `db:"post_id"`
	UserID    string    `db:"user_id"`
	Content   string    `db:"content"`
	IsHidden  bool      `db:"is_hidden"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// PostWithAuthor carries the author's display name resolved alongside the
// post row.
type PostWithAuthor struct {
	Post
	AuthorName string `db:"author_name"`
}

type CommentWithAuthor struct {
	Comment
	AuthorName string `db:"author_name"`
}
