// Wellness Escape | 2026
// repository.go

package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wellnessescape/backend/internal/core"
)

type Repository interface {
	// Create inserts a purchase row. Returns core.ErrDuplicateKey when a
	// row with the same checkout session id already exists.
	Create(ctx context.Context, p *Purchase) error
	ListByUser(ctx context.Context, userID string) ([]Purchase, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Purchase) error {
	query := `
		INSERT INTO purchases (
			id, user_id, stripe_checkout_session_id,
			stripe_payment_intent_id, amount_total, currency, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	row := r.db.QueryRowxContext(ctx, query,
		p.ID,
		p.UserID,
		p.StripeCheckoutSessionID,
		p.StripePaymentIntentID,
		p.AmountTotal,
		p.Currency,
		p.Status,
	)
	if err := row.Scan(&p.CreatedAt); err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create purchase: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create purchase: %w", err)
	}

	return nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Purchase, error) {
	query := `
		SELECT id, user_id, stripe_checkout_session_id,
		       stripe_payment_intent_id, amount_total, currency, status,
		       created_at
		FROM purchases
		WHERE user_id = $1
		ORDER BY created_at DESC`

	var purchases []Purchase
	if err := r.db.SelectContext(ctx, &purchases, query, userID); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}

	return purchases, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
