// Wellness Escape | 2026
// handler.go

package community

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

// RegisterRoutes mounts the public feed, the authenticated write routes, and
// the admin moderation routes.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	requireAdmin func(http.Handler) http.Handler,
) {
	r.Route("/community", func(r chi.Router) {
		r.Get("/posts", h.ListPosts)
		r.Get("/posts/{postID}/comments", h.ListComments)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Post("/posts", h.CreatePost)
			r.Post("/posts/{postID}/comments", h.CreateComment)
		})
	})

	r.Route("/admin/community", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(requireAdmin)
		r.Patch("/posts/{postID}", h.ModeratePost)
		r.Patch("/comments/{commentID}", h.ModerateComment)
	})
}

func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	filter := PostFilter{
		ProgramID: r.URL.Query().Get("program_id"),
		SessionID: r.URL.Query().Get("session_id"),
	}

	posts, err := h.service.ListPosts(r.Context(), filter)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, ToPostResponse(&posts[i]))
	}

	core.OK(w, PostListResponse{Posts: out})
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "not authenticated")
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.CreatePost(r.Context(), userID, req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToPostResponse(p))
}

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.ListComments(
		r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "post not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, ToCommentResponse(&comments[i]))
	}

	core.OK(w, CommentListResponse{Comments: out})
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		core.Unauthorized(w, "not authenticated")
		return
	}

	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.CreateComment(
		r.Context(), identity.UserID, chi.URLParam(r, "postID"), req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "post not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToCommentResponse(&CommentWithAuthor{
		Comment:    *c,
		AuthorName: identity.Name,
	}))
}

func (h *Handler) ModeratePost(w http.ResponseWriter, r *http.Request) {
	var req ModerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	err := h.service.ModeratePost(
		r.Context(), chi.URLParam(r, "postID"), req.IsHidden)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "post not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) ModerateComment(w http.ResponseWriter, r *http.Request) {
	var req ModerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	err := h.service.ModerateComment(
		r.Context(), chi.URLParam(r, "commentID"), req.IsHidden)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "comment not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
