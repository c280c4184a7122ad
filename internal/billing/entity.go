// Wellness Escape | 2026
// entity.go

package billing

import (
	"time"
)

// Purchase is an append-only record of one completed checkout. The checkout
// session id carries a unique index so webhook redeliveries cannot insert a
// second row.
type Purchase struct {
	ID                      string    `db:"id"`
	UserID                  string    `db:"user_id"`
	StripeCheckoutSessionID string    `db:"stripe_checkout_session_id"`
	StripePaymentIntentID   *string   `db:"stripe_payment_intent_id"`
	AmountTotal             *int64    `db:"amount_total"`
	Currency                *string   `db:"currency"`
	Status                  string    `db:"status"`
	CreatedAt               time.Time `db:"created_at"`
}

const StatusPaid = "paid"
