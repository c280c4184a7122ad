// Wellness Escape | 2026
// dto.go

package program

import (
	"time"
)

type CreateProgramRequest struct {
	Title            string  `json:"title" validate:"required,min=1,max=200"`
	ShortDescription *string `json:"short_description" validate:"omitempty,max=500"`
	LongDescription  *string `json:"long_description"`
	IsActive         *bool   `json:"is_active"`
}

type UpdateProgramRequest struct {
	Title            *string `json:"title" validate:"omitempty,min=1,max=200"`
	ShortDescription *string `json:"short_description" validate:"omitempty,max=500"`
	LongDescription  *string `json:"long_description"`
	IsActive         *bool   `json:"is_active"`
}

type CreateWeekRequest struct {
	WeekNumber    int     `json:"week_number" validate:"required,min=1"`
	Title         string  `json:"title" validate:"required,min=1,max=200"`
	Summary       *string `json:"summary"`
	IntentionText *string `json:"intention_text"`
}

type UpdateWeekRequest struct {
	WeekNumber    *int    `json:"week_number" validate:"omitempty,min=1"`
	Title         *string `json:"title" validate:"omitempty,min=1,max=200"`
	Summary       *string `json:"summary"`
	IntentionText *string `json:"intention_text"`
}

type CreateSessionRequest struct {
	OrderIndex      int     `json:"order_index" validate:"min=0"`
	Title           string  `json:"title" validate:"required,min=1,max=200"`
	Description     *string `json:"description"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty,min=1"`
	VideoURL        *string `json:"video_url" validate:"omitempty,url"`
	VideoURL2       *string `json:"video_url_2" validate:"omitempty,url"`
	JournalPrompt   *string `json:"journal_prompt"`
	IsActive        *bool   `json:"is_active"`
}

type UpdateSessionRequest struct {
	OrderIndex      *int    `json:"order_index" validate:"omitempty,min=0"`
	Title           *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description     *string `json:"description"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty,min=1"`
	VideoURL        *string `json:"video_url" validate:"omitempty,url"`
	VideoURL2       *string `json:"video_url_2" validate:"omitempty,url"`
	JournalPrompt   *string `json:"journal_prompt"`
	IsActive        *bool   `json:"is_active"`
}

type CreateCheckInRequest struct {
	ProgramID string `json:"program_id" validate:"required,uuid"`
	WeekID    string `json:"week_id" validate:"required,uuid"`
	SessionID string `json:"session_id" validate:"required,uuid"`
}

type ProgramResponse struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	ShortDescription *string   `json:"short_description"`
	LongDescription  *string   `json:"long_description"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type SessionResponse struct {
	ID              string    `json:"id"`
	WeekID          string    `json:"week_id"`
	OrderIndex      int       `json:"order_index"`
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	DurationMinutes *int      `json:"duration_minutes"`
	VideoURL        *string   `json:"video_url"`
	VideoURL2       *string   `json:"video_url_2"`
	JournalPrompt   *string   `json:"journal_prompt"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

type WeekResponse struct {
	ID            string            `json:"id"`
	WeekNumber    int               `json:"week_number"`
	Title         string            `json:"title"`
	Summary       *string           `json:"summary"`
	IntentionText *string           `json:"intention_text"`
	Sessions      []SessionResponse `json:"sessions"`
}

// ProgramDetailResponse nests active weeks and sessions so the client can
// render a program with one request.
type ProgramDetailResponse struct {
	ProgramResponse
	Weeks []WeekResponse `json:"weeks"`
}

type ProgramListResponse struct {
	Programs []ProgramResponse `json:"programs"`
}

type CheckInResponse struct {
	ID          string    `json:"id"`
	ProgramID   string    `json:"program_id"`
	WeekID      string    `json:"week_id"`
	SessionID   string    `json:"session_id"`
	CompletedAt time.Time `json:"completed_at"`
}

type CheckInListResponse struct {
	CheckIns []CheckInResponse `json:"check_ins"`
}

func ToProgramResponse(p *Program) ProgramResponse {
	return ProgramResponse{
		ID:               p.ID,
		Title:            p.Title,
		ShortDescription: p.ShortDescription,
		LongDescription:  p.LongDescription,
		IsActive:         p.IsActive,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func ToSessionResponse(s *Session) SessionResponse {
	return SessionResponse{
		ID:              s.ID,
		WeekID:          s.WeekID,
		OrderIndex:      s.OrderIndex,
		Title:           s.Title,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		VideoURL:        s.VideoURL,
		VideoURL2:       s.VideoURL2,
		JournalPrompt:   s.JournalPrompt,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
	}
}

func ToCheckInResponse(c *CheckIn) CheckInResponse {
	return CheckInResponse{
		ID:          c.ID,
		ProgramID:   c.ProgramID,
		WeekID:      c.WeekID,
		SessionID:   c.SessionID,
		CompletedAt: c.CompletedAt,
	}
}
