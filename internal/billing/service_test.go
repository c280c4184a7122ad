// Wellness Escape | 2026
// service_test.go

package billing

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellnessescape/backend/internal/config"
	"github.com/wellnessescape/backend/internal/core"
)

const testWebhookSecret = "whsec_test_secret"

type fakeGranter struct {
	granted []string
	err     error
}

func (f *fakeGranter) GrantAccess(_ context.Context, userID string) error {
	if f.err != nil {
		return f.err
	}
	f.granted = append(f.granted, userID)
	return nil
}

type fakeCheckout struct {
	url string
	err error
}

func (f *fakeCheckout) CreateSession(
	_ context.Context,
	_, _ string,
) (string, error) {
	return f.url, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newWebhookService(granter *fakeGranter) (*Service, *MemoryRepository) {
	repo := NewMemoryRepository()
	svc := NewService(repo, granter, nil, config.StripeConfig{
		WebhookSecret: testWebhookSecret,
	}, discardLogger())
	return svc, repo
}

// signPayload builds a Stripe-Signature header the way Stripe does:
// HMAC-SHA256 over "<timestamp>.<payload>".
func signPayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func checkoutCompletedPayload(userID, checkoutSessionID string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_test_1",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": %q,
				"payment_intent": "pi_test_1",
				"amount_total": 49700,
				"currency": "usd",
				"metadata": {"userId": %q}
			}
		}
	}`, checkoutSessionID, userID))
}

func TestHandleWebhookGrantsAccessAndRecordsPurchase(t *testing.T) {
	granter := &fakeGranter{}
	svc, repo := newWebhookService(granter)
	ctx := context.Background()

	payload := checkoutCompletedPayload("user-1", "cs_test_1")
	sig := signPayload(payload, testWebhookSecret, time.Now())

	require.NoError(t, svc.HandleWebhook(ctx, payload, sig))

	assert.Equal(t, []string{"user-1"}, granter.granted)

	purchases, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, "cs_test_1", purchases[0].StripeCheckoutSessionID)
	assert.Equal(t, StatusPaid, purchases[0].Status)
	require.NotNil(t, purchases[0].AmountTotal)
	assert.Equal(t, int64(49700), *purchases[0].AmountTotal)
}

func TestHandleWebhookRedeliveryIsIdempotent(t *testing.T) {
	granter := &fakeGranter{}
	svc, repo := newWebhookService(granter)
	ctx := context.Background()

	payload := checkoutCompletedPayload("user-1", "cs_test_1")
	sig := signPayload(payload, testWebhookSecret, time.Now())

	require.NoError(t, svc.HandleWebhook(ctx, payload, sig))
	require.NoError(t, svc.HandleWebhook(ctx, payload, sig))

	purchases, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, purchases, 1)
}

func TestHandleWebhookInvalidSignature(t *testing.T) {
	granter := &fakeGranter{}
	svc, repo := newWebhookService(granter)
	ctx := context.Background()

	payload := checkoutCompletedPayload("user-1", "cs_test_1")
	sig := signPayload(payload, "whsec_wrong_secret", time.Now())

	err := svc.HandleWebhook(ctx, payload, sig)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	assert.Empty(t, granter.granted)
	purchases, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, purchases)
}

func TestHandleWebhookMissingSignature(t *testing.T) {
	granter := &fakeGranter{}
	svc, _ := newWebhookService(granter)

	payload := checkoutCompletedPayload("user-1", "cs_test_1")

	err := svc.HandleWebhook(context.Background(), payload, "")
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Empty(t, granter.granted)
}

func TestHandleWebhookUnknownUserAcknowledged(t *testing.T) {
	granter := &fakeGranter{err: fmt.Errorf("grant access: %w", core.ErrNotFound)}
	svc, repo := newWebhookService(granter)
	ctx := context.Background()

	payload := checkoutCompletedPayload("ghost-user", "cs_test_1")
	sig := signPayload(payload, testWebhookSecret, time.Now())

	// Acknowledged so the provider stops retrying an unfixable delivery.
	require.NoError(t, svc.HandleWebhook(ctx, payload, sig))

	purchases, err := repo.ListByUser(ctx, "ghost-user")
	require.NoError(t, err)
	assert.Empty(t, purchases)
}

func TestHandleWebhookStorageFailurePropagates(t *testing.T) {
	granter := &fakeGranter{err: fmt.Errorf("grant access: connection reset")}
	svc, _ := newWebhookService(granter)

	payload := checkoutCompletedPayload("user-1", "cs_test_1")
	sig := signPayload(payload, testWebhookSecret, time.Now())

	err := svc.HandleWebhook(context.Background(), payload, sig)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidSignature)
}

func TestHandleWebhookIgnoresOtherEventTypes(t *testing.T) {
	granter := &fakeGranter{}
	svc, _ := newWebhookService(granter)

	payload := []byte(`{
		"id": "evt_test_2",
		"type": "invoice.paid",
		"data": {"object": {}}
	}`)
	sig := signPayload(payload, testWebhookSecret, time.Now())

	require.NoError(t, svc.HandleWebhook(context.Background(), payload, sig))
	assert.Empty(t, granter.granted)
}

func TestHandleWebhookWithoutSecret(t *testing.T) {
	svc := NewService(
		NewMemoryRepository(), &fakeGranter{}, nil,
		config.StripeConfig{}, discardLogger())

	payload := checkoutCompletedPayload("user-1", "cs_test_1")

	err := svc.HandleWebhook(context.Background(), payload, "t=1,v1=abc")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestHandleWebhookMissingUserMetadataAcknowledged(t *testing.T) {
	granter := &fakeGranter{}
	svc, _ := newWebhookService(granter)

	payload := []byte(`{
		"id": "evt_test_3",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_test_9", "metadata": {}}}
	}`)
	sig := signPayload(payload, testWebhookSecret, time.Now())

	require.NoError(t, svc.HandleWebhook(context.Background(), payload, sig))
	assert.Empty(t, granter.granted)
}

func TestCreateCheckoutNotConfigured(t *testing.T) {
	svc := NewService(
		NewMemoryRepository(), &fakeGranter{}, nil,
		config.StripeConfig{}, discardLogger())

	assert.False(t, svc.Configured())

	_, err := svc.CreateCheckout(context.Background(), "user-1", "a@x.com")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestCreateCheckoutReturnsURL(t *testing.T) {
	svc := NewService(
		NewMemoryRepository(), &fakeGranter{},
		&fakeCheckout{url: "https://checkout.stripe.com/c/pay/cs_test_1"},
		config.StripeConfig{}, discardLogger())

	assert.True(t, svc.Configured())

	url, err := svc.CreateCheckout(context.Background(), "user-1", "a@x.com")
	require.NoError(t, err)
	assert.Contains(t, url, "checkout.stripe.com")
}
