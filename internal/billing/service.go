// Wellness Escape | 2026
// service.go

package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/wellnessescape/backend/internal/config"
	"github.com/wellnessescape/backend/internal/core"
)

var (
	// ErrNotConfigured means no payment credentials were provided. Checkout
	// and webhook endpoints refuse to operate rather than guess.
	ErrNotConfigured = errors.New("billing is not configured")
	// ErrInvalidSignature means the webhook payload failed verification.
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// AccessGranter flips the paid-access flag on a user account.
type AccessGranter interface {
	GrantAccess(ctx context.Context, userID string) error
}

type Service struct {
	repo     Repository
	users    AccessGranter
	checkout CheckoutClient
	cfg      config.StripeConfig
	logger   *slog.Logger
}

// NewService wires the reconciler. checkout may be nil when billing is not
// configured; CreateCheckout then fails with ErrNotConfigured.
func NewService(
	repo Repository,
	users AccessGranter,
	checkout CheckoutClient,
	cfg config.StripeConfig,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		checkout: checkout,
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *Service) Configured() bool {
	return s.checkout != nil
}

func (s *Service) CreateCheckout(
	ctx context.Context,
	userID, email string,
) (string, error) {
	if s.checkout == nil {
		return "", ErrNotConfigured
	}

	return s.checkout.CreateSession(ctx, userID, email)
}

func (s *Service) ListPurchases(
	ctx context.Context,
	userID string,
) ([]Purchase, error) {
	return s.repo.ListByUser(ctx, userID)
}

// HandleWebhook verifies and reconciles one webhook delivery. The operation
// is idempotent: redeliveries of a completed checkout grant nothing new and
// insert nothing new. A nil return acknowledges the event so Stripe stops
// retrying; errors other than ErrInvalidSignature signal a transient failure
// that should be redelivered.
func (s *Service) HandleWebhook(
	ctx context.Context,
	payload []byte,
	sigHeader string,
) error {
	if s.cfg.WebhookSecret == "" {
		return ErrNotConfigured
	}

	event, err := webhook.ConstructEventWithOptions(
		payload, sigHeader, s.cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	if event.Type != "checkout.session.completed" {
		s.logger.Debug("ignoring webhook event", "type", event.Type)
		return nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return fmt.Errorf("%w: malformed checkout session: %v",
			ErrInvalidSignature, err)
	}

	userID := session.Metadata["userId"]
	if userID == "" {
		s.logger.Warn("checkout session without user metadata",
			"checkout_session_id", session.ID)
		return nil
	}

	if err := s.users.GrantAccess(ctx, userID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			// Acknowledge: retrying will never make this user exist.
			s.logger.Warn("checkout completed for unknown user",
				"user_id", userID,
				"checkout_session_id", session.ID)
			return nil
		}
		return fmt.Errorf("grant access: %w", err)
	}

	purchase := &Purchase{
		ID:                      uuid.New().String(),
		UserID:                  userID,
		StripeCheckoutSessionID: session.ID,
		AmountTotal:             optionalInt64(session.AmountTotal),
		Currency:                optionalCurrency(session.Currency),
		Status:                  StatusPaid,
	}
	if session.PaymentIntent != nil {
		purchase.StripePaymentIntentID = &session.PaymentIntent.ID
	}

	if err := s.repo.Create(ctx, purchase); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			s.logger.Info("webhook redelivery for recorded purchase",
				"checkout_session_id", session.ID)
			return nil
		}
		return err
	}

	s.logger.Info("purchase recorded",
		"user_id", userID,
		"checkout_session_id", session.ID)

	return nil
}

func optionalInt64(v int64) *int64 {
	if v == 0 {
		return nil
	}
	return &v
}

func optionalCurrency(c stripe.Currency) *string {
	if c == "" {
		return nil
	}
	s := string(c)
	return &s
}
