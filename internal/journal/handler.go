// Wellness Escape | 2026
// handler.go

package journal

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/wellnessescape/backend/internal/core"
	"github.com/wellnessescape/backend/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the journal behind the paid-access gate. Every route
// operates on the caller's own entries only.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	requireAccess func(http.Handler) http.Handler,
) {
	r.Route("/journal", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(requireAccess)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{entryID}", h.Get)
		r.Patch("/{entryID}", h.Update)
		r.Delete("/{entryID}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "not authenticated")
		return
	}

	entries, err := h.service.List(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	out := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, ToEntryResponse(&entries[i]))
	}

	core.OK(w, EntryListResponse{Entries: out})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "not authenticated")
		return
	}

	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	e, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToEntryResponse(e))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "not authenticated")
		return
	}

	e, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "entryID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "journal entry not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToEntryResponse(e))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "not authenticated")
		return
	}

	var req UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	e, err := h.service.Update(
		r.Context(), userID, chi.URLParam(r, "entryID"), req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "journal entry not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToEntryResponse(e))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "not authenticated")
		return
	}

	err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "entryID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "journal entry not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
