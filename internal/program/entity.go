// Wellness Escape | 2026
// entity.go

package program

import (
	"time"
)

type Program struct {
	ID               string    `db:"id"`
	Title            string    `db:"title"`
	ShortDescription *string   `db:"short_description"`
	LongDescription  *string   `db:"long_description"`
	IsActive         bool      `db:"is_active"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

type Week struct {
	ID            string    `db:"id"`
	ProgramID     string    `db:"program_id"`
	WeekNumber    int       `db:"week_number"`
	Title         string    `db:"title"`
	Summary       *string   `db:"summary"`
	IntentionText *string   `db:"intention_text"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type Session struct {
	ID              string    `db:"id"`
	ProgramID       string    `db:"program_id"`
	WeekID          string    `db:"week_id"`
	OrderIndex      int       `db:"order_index"`
	Title           string    `db:"title"`
	Description     *string   `db:"description"`
	DurationMinutes *int      `db:"duration_minutes"`
	VideoURL        *string   `db:"video_url"`
	VideoURL2       *string   `db:"video_url_2"`
	JournalPrompt   *string   `db:"journal_prompt"`
	IsActive        bool      `db:"is_active"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// CheckIn marks one session as completed by one user.
type CheckIn struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	ProgramID   string    `db:"program_id"`
	WeekID      string    `db:"week_id"`
	SessionID   string    `db:"session_id"`
	CompletedAt time.Time `db:"completed_at"`
}
