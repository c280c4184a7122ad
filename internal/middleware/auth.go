// Wellness Escape | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/wellnessescape/backend/internal/core"
	"github.com/wellnessescape/backend/internal/session"
)

const (
	UserIDKey     contextKey = "user_id"
	UserRoleKey   contextKey = "user_role"
	UserAccessKey contextKey = "user_access"
	IdentityKey   contextKey = "identity"
)

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// Identity is the per-request view of the authenticated user. Role and
// access flag are loaded fresh from storage on every request so grants and
// role changes apply without re-login.
type Identity struct {
	UserID    string
	Email     string
	Name      string
	Role      string
	HasAccess bool
}

type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID string) (*Identity, error)
}

// Authenticator resolves the session cookie and attaches the caller's
// identity to the request context. Requests without a valid session get 401.
func Authenticator(
	sessions *session.Manager,
	resolver IdentityResolver,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sessions.Resolve(r.Context(), r)
			if err != nil {
				if errors.Is(err, core.ErrSessionExpired) {
					core.Unauthorized(w, "not authenticated")
					return
				}
				core.InternalServerError(w, err)
				return
			}

			identity, err := resolver.ResolveIdentity(r.Context(), sess.UserID)
			if err != nil {
				// The user behind a live session can be gone after an
				// admin-side delete; treat it like a dead session.
				if errors.Is(err, core.ErrNotFound) {
					core.Unauthorized(w, "not authenticated")
					return
				}
				core.InternalServerError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), identity)))
		})
	}
}

// RequireAdmin gates admin-only routes. Must run after Authenticator.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := GetUserRole(r.Context())

		if role == "" {
			core.Unauthorized(w, "authentication required")
			return
		}

		if role != RoleAdmin {
			core.Forbidden(w, "admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAccess gates paid-program routes. Admins bypass the paywall.
func RequireAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := GetIdentity(r.Context())

		if identity == nil {
			core.Unauthorized(w, "authentication required")
			return
		}

		if !identity.HasAccess && identity.Role != RoleAdmin {
			core.Forbidden(w, "program access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func withIdentity(ctx context.Context, identity *Identity) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, identity.UserID)
	ctx = context.WithValue(ctx, UserRoleKey, identity.Role)
	ctx = context.WithValue(ctx, UserAccessKey, identity.HasAccess)
	return context.WithValue(ctx, IdentityKey, identity)
}

func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

func GetUserRole(ctx context.Context) string {
	if role, ok := ctx.Value(UserRoleKey).(string); ok {
		return role
	}
	return ""
}

func HasAccess(ctx context.Context) bool {
	if access, ok := ctx.Value(UserAccessKey).(bool); ok {
		return access
	}
	return false
}

func GetIdentity(ctx context.Context) *Identity {
	if identity, ok := ctx.Value(IdentityKey).(*Identity); ok {
		return identity
	}
	return nil
}

func IsAdmin(ctx context.Context) bool {
	return GetUserRole(ctx) == RoleAdmin
}
