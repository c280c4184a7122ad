// Wellness Escape | 2026
// dto.go

package community

import (
	"time"
)

type CreatePostRequest struct {
	ProgramID *string `json:"program_id" validate:"omitempty,uuid"`
	WeekID    *string `json:"week_id" validate:"omitempty,uuid"`
	SessionID *string `json:"session_id" validate:"omitempty,uuid"`
	Content   string  `json:"content" validate:"required,min=1,max=5000"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

type ModerateRequest struct {
	IsHidden bool `json:"is_hidden"`
}

type PostResponse struct {
	ID         string    `json:"id"`
	AuthorName string    `json:"author_name"`
	ProgramID  *string   `json:"program_id"`
	WeekID     *string   `json:"week_id"`
	SessionID  *string   `json:"session_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
}

type CommentResponse struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
}

func ToPostResponse(p *PostWithAuthor) PostResponse {
	return PostResponse{
		ID:         p.ID,
		AuthorName: p.AuthorName,
		ProgramID:  p.ProgramID,
		WeekID:     p.WeekID,
		SessionID:  p.SessionID,
		Content:    p.Content,
		CreatedAt:  p.CreatedAt,
	}
}

func ToCommentResponse(c *CommentWithAuthor) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		PostID:     c.PostID,
		AuthorName: c.AuthorName,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt,
	}
}
