// Wellness Escape | 2026
// handler.go

package program

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

// RegisterRoutes mounts the public catalogue, the access-gated check-in
// routes, and the admin content editor.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	requireAdmin func(http.Handler) http.Handler,
	requireAccess func(http.Handler) http.Handler,
) {
	r.Route("/programs", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{programID}", h.GetDetail)
	})

	r.Route("/check-ins", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(requireAccess)
		r.Get("/", h.ListCheckIns)
		r.Post("/", h.CreateCheckIn)
	})

	r.Route("/admin/programs", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(requireAdmin)
		r.Get("/", h.AdminList)
		r.Post("/", h.Create)
		r.Get("/{programID}", h.AdminGetDetail)
		r.Patch("/{programID}", h.Update)
		r.Post("/{programID}/weeks", h.CreateWeek)
	})

	r.Route("/admin/weeks", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(requireAdmin)
		r.Patch("/{weekID}", h.UpdateWeek)
		r.Post("/{weekID}/sessions", h.CreateSession)
	})

	r.Route("/admin/sessions", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(requireAdmin)
		r.Patch("/{sessionID}", h.UpdateSession)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *Handler) list(
	w http.ResponseWriter,
	r *http.Request,
	includeInactive bool,
) {
	programs, err := h.service.List(r.Context(), includeInactive)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	out := make([]ProgramResponse, 0, len(programs))
	for i := range programs {
		out = append(out, ToProgramResponse(&programs[i]))
	}

	core.OK(w, ProgramListResponse{Programs: out})
}

func (h *Handler) GetDetail(w http.ResponseWriter, r *http.Request) {
	h.getDetail(w, r, false)
}

func (h *Handler) AdminGetDetail(w http.ResponseWriter, r *http.Request) {
	h.getDetail(w, r, true)
}

func (h *Handler) getDetail(
	w http.ResponseWriter,
	r *http.Request,
	includeInactive bool,
) {
	detail, err := h.service.GetDetail(
		r.Context(), chi.URLParam(r, "programID"), includeInactive)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "program not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, detail)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToProgramResponse(p))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.Update(r.Context(), chi.URLParam(r, "programID"), req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "program not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToProgramResponse(p))
}

func (h *Handler) CreateWeek(w http.ResponseWriter, r *http.Request) {
	var req CreateWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	week, err := h.service.CreateWeek(
		r.Context(), chi.URLParam(r, "programID"), req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "program not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, week)
}

func (h *Handler) UpdateWeek(w http.ResponseWriter, r *http.Request) {
	var req UpdateWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	week, err := h.service.UpdateWeek(
		r.Context(), chi.URLParam(r, "weekID"), req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "week not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, week)
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	sess, err := h.service.CreateSession(
		r.Context(), chi.URLParam(r, "weekID"), req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "week not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToSessionResponse(sess))
}

func (h *Handler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	var req UpdateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	sess, err := h.service.UpdateSession(
		r.Context(), chi.URLParam(r, "sessionID"), req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "session not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToSessionResponse(sess))
}

func (h *Handler) CreateCheckIn(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "not authenticated")
		return
	}

	var req CreateCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	checkIn, err := h.service.CheckIn(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "session not found")
		case errors.Is(err, ErrMismatchedSession):
			core.BadRequest(w, "session does not belong to the given week")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, ToCheckInResponse(checkIn))
}

func (h *Handler) ListCheckIns(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "not authenticated")
		return
	}

	checkIns, err := h.service.ListCheckIns(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	out := make([]CheckInResponse, 0, len(checkIns))
	for i := range checkIns {
		out = append(out, ToCheckInResponse(&checkIns[i]))
	}

	core.OK(w, CheckInListResponse{CheckIns: out})
}
