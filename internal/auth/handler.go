// Wellness Escape | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/wellnessescape/backend/internal/core"
	"github.com/wellnessescape/backend/internal/middleware"
	"github.com/wellnessescape/backend/internal/session"
)

type Handler struct {
	service   *Service
	sessions  *session.Manager
	validator *validator.Validate
}

func NewHandler(service *Service, sessions *session.Manager) *Handler {
	return &Handler{
		service:   service,
		sessions:  sessions,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Get("/user", h.CurrentUser)
		})
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	u, err := h.service.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			core.BadRequest(w, "email already registered")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	if err := h.sessions.Issue(r.Context(), w, u.ID); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, AuthResponse{ID: u.ID, Email: u.Email, Name: u.Name})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	u, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.Unauthorized(w, "invalid email or password")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	if err := h.sessions.Issue(r.Context(), w, u.ID); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, AuthResponse{ID: u.ID, Email: u.Email, Name: u.Name})
}

// Logout invalidates the current session. Logging out without one is still
// a success.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, LogoutResponse{Message: "Logged out successfully"})
}

func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		core.Unauthorized(w, "not authenticated")
		return
	}

	core.OK(w, CurrentUserResponse{
		ID:        identity.UserID,
		Email:     identity.Email,
		Name:      identity.Name,
		Role:      identity.Role,
		HasAccess: identity.HasAccess,
	})
}
