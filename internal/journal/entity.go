// Wellness Escape | 2026
// entity.go

package journal

import (
	"time"
)

type Entry struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	SessionID *string   `db:"session_id"`
	Title     string    `db:"title"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
