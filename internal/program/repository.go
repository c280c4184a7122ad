// Wellness Escape | 2026
// repository.go

package program

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wellnessescape/backend/internal/core"
)

type Repository interface {
	CreateProgram(ctx context.Context, p *Program) error
	UpdateProgram(ctx context.Context, p *Program) error
	GetProgram(ctx context.Context, id string) (*Program, error)
	// ListPrograms returns active programs only unless includeInactive is
	// set (admin listing).
	ListPrograms(ctx context.Context, includeInactive bool) ([]Program, error)

	CreateWeek(ctx context.Context, w *Week) error
	UpdateWeek(ctx context.Context, w *Week) error
	GetWeek(ctx context.Context, id string) (*Week, error)
	ListWeeks(ctx context.Context, programID string) ([]Week, error)

	CreateSession(ctx context.Context, s *Session) error
	UpdateSession(ctx context.Context, s *Session) error
	GetSession(ctx context.Context, id string) (*Session, error)
	ListSessions(ctx context.Context, programID string) ([]Session, error)

	CreateCheckIn(ctx context.Context, c *CheckIn) error
	ListCheckIns(ctx context.Context, userID string) ([]CheckIn, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) CreateProgram(ctx context.Context, p *Program) error {
	query := `
		INSERT INTO programs (
			id, title, short_description, long_description, is_active
		)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		p.ID, p.Title, p.ShortDescription, p.LongDescription, p.IsActive)
	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("create program: %w", err)
	}

	return nil
}

func (r *repository) UpdateProgram(ctx context.Context, p *Program) error {
	query := `
		UPDATE programs
		SET title = $2, short_description = $3, long_description = $4,
		    is_active = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		p.ID, p.Title, p.ShortDescription, p.LongDescription, p.IsActive)
	if err := row.Scan(&p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update program: %w", core.ErrNotFound)
		}
		return fmt.Errorf("update program: %w", err)
	}

	return nil
}

func (r *repository) GetProgram(
	ctx context.Context,
	id string,
) (*Program, error) {
	query := `
		SELECT id, title, short_description, long_description, is_active,
		       created_at, updated_at
		FROM programs
		WHERE id = $1`

	var p Program
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get program: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get program: %w", err)
	}

	return &p, nil
}

func (r *repository) ListPrograms(
	ctx context.Context,
	includeInactive bool,
) ([]Program, error) {
	query := `
		SELECT id, title, short_description, long_description, is_active,
		       created_at, updated_at
		FROM programs
		WHERE is_active OR $1
		ORDER BY created_at ASC`

	var programs []Program
	err := r.db.SelectContext(ctx, &programs, query, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}

	return programs, nil
}

func (r *repository) CreateWeek(ctx context.Context, w *Week) error {
	query := `
		INSERT INTO program_weeks (
			id, program_id, week_number, title, summary, intention_text
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		w.ID, w.ProgramID, w.WeekNumber, w.Title, w.Summary, w.IntentionText)
	if err := row.Scan(&w.CreatedAt, &w.UpdatedAt); err != nil {
		return fmt.Errorf("create week: %w", err)
	}

	return nil
}

func (r *repository) UpdateWeek(ctx context.Context, w *Week) error {
	query := `
		UPDATE program_weeks
		SET week_number = $2, title = $3, summary = $4, intention_text = $5,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		w.ID, w.WeekNumber, w.Title, w.Summary, w.IntentionText)
	if err := row.Scan(&w.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update week: %w", core.ErrNotFound)
		}
		return fmt.Errorf("update week: %w", err)
	}

	return nil
}

func (r *repository) GetWeek(ctx context.Context, id string) (*Week, error) {
	query := `
		SELECT id, program_id, week_number, title, summary, intention_text,
		       created_at, updated_at
		FROM program_weeks
		WHERE id = $1`

	var w Week
	err := r.db.GetContext(ctx, &w, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get week: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get week: %w", err)
	}

	return &w, nil
}

func (r *repository) ListWeeks(
	ctx context.Context,
	programID string,
) ([]Week, error) {
	query := `
		SELECT id, program_id, week_number, title, summary, intention_text,
		       created_at, updated_at
		FROM program_weeks
		WHERE program_id = $1
		ORDER BY week_number ASC`

	var weeks []Week
	err := r.db.SelectContext(ctx, &weeks, query, programID)
	if err != nil {
		return nil, fmt.Errorf("list weeks: %w", err)
	}

	return weeks, nil
}

func (r *repository) CreateSession(ctx context.Context, s *Session) error {
	query := `
		INSERT INTO program_sessions (
			id, program_id, week_id, order_index, title, description,
			duration_minutes, video_url, video_url_2, journal_prompt,
			is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		s.ID, s.ProgramID, s.WeekID, s.OrderIndex, s.Title, s.Description,
		s.DurationMinutes, s.VideoURL, s.VideoURL2, s.JournalPrompt,
		s.IsActive)
	if err := row.Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	return nil
}

func (r *repository) UpdateSession(ctx context.Context, s *Session) error {
	query := `
		UPDATE program_sessions
		SET order_index = $2, title = $3, description = $4,
		    duration_minutes = $5, video_url = $6, video_url_2 = $7,
		    journal_prompt = $8, is_active = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		s.ID, s.OrderIndex, s.Title, s.Description, s.DurationMinutes,
		s.VideoURL, s.VideoURL2, s.JournalPrompt, s.IsActive)
	if err := row.Scan(&s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update session: %w", core.ErrNotFound)
		}
		return fmt.Errorf("update session: %w", err)
	}

	return nil
}

func (r *repository) GetSession(
	ctx context.Context,
	id string,
) (*Session, error) {
	query := `
		SELECT id, program_id, week_id, order_index, title, description,
		       duration_minutes, video_url, video_url_2, journal_prompt,
		       is_active, created_at, updated_at
		FROM program_sessions
		WHERE id = $1`

	var s Session
	err := r.db.GetContext(ctx, &s, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get session: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	return &s, nil
}

func (r *repository) ListSessions(
	ctx context.Context,
	programID string,
) ([]Session, error) {
	query := `
		SELECT id, program_id, week_id, order_index, title, description,
		       duration_minutes, video_url, video_url_2, journal_prompt,
		       is_active, created_at, updated_at
		FROM program_sessions
		WHERE program_id = $1
		ORDER BY order_index ASC`

	var sessions []Session
	err := r.db.SelectContext(ctx, &sessions, query, programID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	return sessions, nil
}

func (r *repository) CreateCheckIn(ctx context.Context, c *CheckIn) error {
	query := `
		INSERT INTO check_ins (id, user_id, program_id, week_id, session_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING completed_at`

	row := r.db.QueryRowxContext(ctx, query,
		c.ID, c.UserID, c.ProgramID, c.WeekID, c.SessionID)
	if err := row.Scan(&c.CompletedAt); err != nil {
		return fmt.Errorf("create check-in: %w", err)
	}

	return nil
}

func (r *repository) ListCheckIns(
	ctx context.Context,
	userID string,
) ([]CheckIn, error) {
	query := `
		SELECT id, user_id, program_id, week_id, session_id, completed_at
		FROM check_ins
		WHERE user_id = $1
		ORDER BY completed_at DESC`

	var checkIns []CheckIn
	err := r.db.SelectContext(ctx, &checkIns, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}

	return checkIns, nil
}
