// Wellness Escape | 2026
// auth_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellnessescape/backend/internal/config"
	"github.com/wellnessescape/backend/internal/core"
	"github.com/wellnessescape/backend/internal/session"
)

// fakeResolver is a tiny identity source backed by a map, mutated directly by
// tests to simulate role and access changes between requests.
type fakeResolver struct {
	identities map[string]*Identity
}

func (f *fakeResolver) ResolveIdentity(
	_ context.Context,
	userID string,
) (*Identity, error) {
	identity, ok := f.identities[userID]
	if !ok {
		return nil, core.ErrNotFound
	}
	return identity, nil
}

type gateEnv struct {
	router   chi.Router
	sessions *session.Manager
	resolver *fakeResolver
}

func newGateEnv(t *testing.T) *gateEnv {
	t.Helper()

	store := session.NewMemoryStore()
	t.Cleanup(store.Close)

	sessions := session.NewManager(store, config.SessionConfig{
		CookieName: "wellness_session",
		TTL:        time.Hour,
	})

	resolver := &fakeResolver{identities: make(map[string]*Identity)}

	ok := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(Authenticator(sessions, resolver))
		r.Get("/me", ok)

		r.Group(func(r chi.Router) {
			r.Use(RequireAccess)
			r.Get("/gated", ok)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin)
			r.Get("/admin-only", ok)
		})
	})

	return &gateEnv{router: r, sessions: sessions, resolver: resolver}
}

func (env *gateEnv) login(t *testing.T, identity *Identity) *http.Cookie {
	t.Helper()

	env.resolver.identities[identity.UserID] = identity

	rec := httptest.NewRecorder()
	require.NoError(
		t, env.sessions.Issue(context.Background(), rec, identity.UserID))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

func (env *gateEnv) get(path string, cookie *http.Cookie) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec.Code
}

func TestAuthenticatorRejectsMissingSession(t *testing.T) {
	env := newGateEnv(t)

	assert.Equal(t, http.StatusUnauthorized, env.get("/me", nil))
}

func TestAuthenticatorRejectsDeletedUser(t *testing.T) {
	env := newGateEnv(t)
	cookie := env.login(t, &Identity{UserID: "user-1", Role: RoleClient})

	delete(env.resolver.identities, "user-1")

	assert.Equal(t, http.StatusUnauthorized, env.get("/me", cookie))
}

func TestRequireAccessFlipsWithoutRelogin(t *testing.T) {
	env := newGateEnv(t)
	identity := &Identity{UserID: "user-1", Role: RoleClient, HasAccess: false}
	cookie := env.login(t, identity)

	assert.Equal(t, http.StatusForbidden, env.get("/gated", cookie))

	// Access is resolved fresh each request, so granting it takes effect
	// on the same session.
	identity.HasAccess = true

	assert.Equal(t, http.StatusOK, env.get("/gated", cookie))
}

func TestRequireAccessAdminBypass(t *testing.T) {
	env := newGateEnv(t)
	cookie := env.login(t, &Identity{
		UserID:    "admin-1",
		Role:      RoleAdmin,
		HasAccess: false,
	})

	assert.Equal(t, http.StatusOK, env.get("/gated", cookie))
}

func TestRequireAdminRejectsClients(t *testing.T) {
	env := newGateEnv(t)
	cookie := env.login(t, &Identity{
		UserID:    "user-1",
		Role:      RoleClient,
		HasAccess: true,
	})

	assert.Equal(t, http.StatusForbidden, env.get("/admin-only", cookie))
}

func TestRequireAdminAllowsAdmins(t *testing.T) {
	env := newGateEnv(t)
	cookie := env.login(t, &Identity{UserID: "admin-1", Role: RoleAdmin})

	assert.Equal(t, http.StatusOK, env.get("/admin-only", cookie))
}
