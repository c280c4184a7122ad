// Wellness Escape | 2026
// handler_test.go

package billing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellnessescape/backend/internal/config"
	"github.com/wellnessescape/backend/internal/middleware"
	"github.com/wellnessescape/backend/internal/session"
	"github.com/wellnessescape/backend/internal/user"
)

type webhookTestEnv struct {
	router   http.Handler
	users    *user.Service
	sessions *session.Manager
}

func newWebhookTestEnv(t *testing.T, checkout CheckoutClient) *webhookTestEnv {
	t.Helper()

	sessionCfg := config.SessionConfig{
		CookieName: "wellness_session",
		TTL:        time.Hour,
	}

	users := user.NewService(user.NewMemoryRepository())

	store := session.NewMemoryStore()
	t.Cleanup(store.Close)
	sessions := session.NewManager(store, sessionCfg)

	svc := NewService(NewMemoryRepository(), users, checkout, config.StripeConfig{
		WebhookSecret: testWebhookSecret,
	}, discardLogger())

	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, middleware.Authenticator(sessions, users))

	return &webhookTestEnv{router: r, users: users, sessions: sessions}
}

func (env *webhookTestEnv) registerUser(t *testing.T) (string, *http.Cookie) {
	t.Helper()

	u, err := env.users.Create(
		context.Background(),
		"anna@example.com", "hash", "Anna", user.RoleClient, false)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, env.sessions.Issue(context.Background(), rec, u.ID))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	return u.ID, cookies[0]
}

func TestWebhookEndpointGrantsAccess(t *testing.T) {
	env := newWebhookTestEnv(t, nil)
	userID, _ := env.registerUser(t)

	payload := checkoutCompletedPayload(userID, "cs_test_1")
	sig := signPayload(payload, testWebhookSecret, time.Now())

	req := httptest.NewRequest(
		http.MethodPost, "/billing/webhook", strings.NewReader(string(payload)))
	req.Header.Set("Stripe-Signature", sig)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"received":true}`, rec.Body.String())

	u, err := env.users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, u.HasAccess)
}

func TestWebhookEndpointRejectsBadSignature(t *testing.T) {
	env := newWebhookTestEnv(t, nil)
	userID, _ := env.registerUser(t)

	payload := checkoutCompletedPayload(userID, "cs_test_1")

	req := httptest.NewRequest(
		http.MethodPost, "/billing/webhook", strings.NewReader(string(payload)))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	u, err := env.users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, u.HasAccess)
}

func TestStatusEndpointReportsConfiguration(t *testing.T) {
	env := newWebhookTestEnv(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/billing/status", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"configured":false}`, rec.Body.String())
}

func TestCreateCheckoutRequiresSession(t *testing.T) {
	env := newWebhookTestEnv(t, nil)

	req := httptest.NewRequest(
		http.MethodPost, "/billing/create-checkout-session", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateCheckoutUnavailableWhenNotConfigured(t *testing.T) {
	env := newWebhookTestEnv(t, nil)
	_, cookie := env.registerUser(t)

	req := httptest.NewRequest(
		http.MethodPost, "/billing/create-checkout-session", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCreateCheckoutReturnsHostedURL(t *testing.T) {
	env := newWebhookTestEnv(t, &fakeCheckout{
		url: "https://checkout.stripe.com/c/pay/cs_test_1",
	})
	_, cookie := env.registerUser(t)

	req := httptest.NewRequest(
		http.MethodPost, "/billing/create-checkout-session", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "checkout.stripe.com")
}
