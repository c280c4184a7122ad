// Wellness Escape | 2026
// stripe.go

package billing

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/wellnessescape/backend/internal/config"
)

// CheckoutClient abstracts the payment provider so the service can be
// exercised without network access.
type CheckoutClient interface {
	// CreateSession opens a hosted checkout page for the given user and
	// returns its URL. The user id travels in the session metadata so the
	// webhook can attribute the payment.
	CreateSession(ctx context.Context, userID, email string) (string, error)
}

// StripeClient wraps the Stripe SDK. The configured price id may be either a
// price (price_...) or a product (prod_...); products are resolved to their
// active price once and cached for the process lifetime.
type StripeClient struct {
	sc  *client.API
	cfg config.StripeConfig
	app config.AppConfig

	mu      sync.Mutex
	priceID string
}

func NewStripeClient(
	cfg config.StripeConfig,
	app config.AppConfig,
) *StripeClient {
	return &StripeClient{
		sc:  client.New(cfg.SecretKey, nil),
		cfg: cfg,
		app: app,
	}
}

func (c *StripeClient) CreateSession(
	ctx context.Context,
	userID, email string,
) (string, error) {
	priceID, err := c.resolvePriceID(ctx)
	if err != nil {
		return "", err
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(email),
		SuccessURL: stripe.String(
			c.app.URL + "/purchase/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL: stripe.String(c.app.URL + "/purchase/cancelled"),
	}
	params.Context = ctx
	params.AddMetadata("userId", userID)

	session, err := c.sc.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	return session.URL, nil
}

func (c *StripeClient) resolvePriceID(ctx context.Context) (string, error) {
	if !strings.HasPrefix(c.cfg.PriceID, "prod_") {
		return c.cfg.PriceID, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.priceID != "" {
		return c.priceID, nil
	}

	listParams := &stripe.PriceListParams{
		Product: stripe.String(c.cfg.PriceID),
		Active:  stripe.Bool(true),
	}
	listParams.Context = ctx
	listParams.Limit = stripe.Int64(1)

	iter := c.sc.Prices.List(listParams)
	for iter.Next() {
		c.priceID = iter.Price().ID
		return c.priceID, nil
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("list prices: %w", err)
	}

	// No active price exists for the product yet. Create one so checkout
	// keeps working on a fresh Stripe account.
	createParams := &stripe.PriceParams{
		Product:    stripe.String(c.cfg.PriceID),
		UnitAmount: stripe.Int64(49700),
		Currency:   stripe.String(string(stripe.CurrencyUSD)),
	}
	createParams.Context = ctx

	price, err := c.sc.Prices.New(createParams)
	if err != nil {
		return "", fmt.Errorf("create price: %w", err)
	}

	c.priceID = price.ID
	return c.priceID, nil
}
