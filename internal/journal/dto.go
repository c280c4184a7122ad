// Wellness Escape | 2026
// dto.go

package journal

import (
	"time"
)

type CreateEntryRequest struct {
	SessionID *string `json:"session_id" validate:"omitempty,uuid"`
	Title     string  `json:"title" validate:"required,min=1,max=200"`
	Body      string  `json:"body" validate:"required,min=1"`
}

type UpdateEntryRequest struct {
	Title *string `json:"title" validate:"omitempty,min=1,max=200"`
	Body  *string `json:"body" validate:"omitempty,min=1"`
}

type EntryResponse struct {
	ID        string    `json:"id"`
	SessionID *string   `json:"session_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type EntryListResponse struct {
	Entries []EntryResponse `json:"entries"`
}

func ToEntryResponse(e *Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		SessionID: e.SessionID,
		Title:     e.Title,
		Body:      e.Body,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
