// Wellness Escape | 2026
// repository.go

package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wellnessescape/backend/internal/core"
)

// Repository scopes every read and write to the owning user. An entry that
// belongs to someone else is indistinguishable from a missing one.
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	Get(ctx context.Context, userID, id string) (*Entry, error)
	ListByUser(ctx context.Context, userID string) ([]Entry, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, userID, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Entry) error {
	query := `
		INSERT INTO journal_entries (id, user_id, session_id, title, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		e.ID, e.UserID, e.SessionID, e.Title, e.Body)
	if err := row.Scan(&e.CreatedAt, &e.UpdatedAt); err != nil {
		return fmt.Errorf("create journal entry: %w", err)
	}

	return nil
}

func (r *repository) Get(
	ctx context.Context,
	userID, id string,
) (*Entry, error) {
	query := `
		SELECT id, user_id, session_id, title, body, created_at, updated_at
		FROM journal_entries
		WHERE id = $1 AND user_id = $2`

	var e Entry
	err := r.db.GetContext(ctx, &e, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get journal entry: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get journal entry: %w", err)
	}

	return &e, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Entry, error) {
	query := `
		SELECT id, user_id, session_id, title, body, created_at, updated_at
		FROM journal_entries
		WHERE user_id = $1
		ORDER BY created_at DESC`

	var entries []Entry
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}

	return entries, nil
}

func (r *repository) Update(ctx context.Context, e *Entry) error {
	query := `
		UPDATE journal_entries
		SET title = $3, body = $4, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at`

	row := r.db.QueryRowxContext(ctx, query, e.ID, e.UserID, e.Title, e.Body)
	if err := row.Scan(&e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update journal entry: %w", core.ErrNotFound)
		}
		return fmt.Errorf("update journal entry: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, userID, id string) error {
	query := `
		DELETE FROM journal_entries
		WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete journal entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete journal entry: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete journal entry: %w", core.ErrNotFound)
	}

	return nil
}
