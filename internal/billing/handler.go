// Wellness Escape | 2026
// handler.go

package billing

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wellnessescape/backend/internal/core"
	"github.com/wellnessescape/backend/internal/middleware"
)

// Webhook payloads from Stripe are small; anything larger is hostile.
const maxWebhookBody = 64 * 1024

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/billing", func(r chi.Router) {
		r.Get("/status", h.Status)
		r.Post("/webhook", h.Webhook)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Post("/create-checkout-session", h.CreateCheckout)
			r.Get("/purchases", h.ListPurchases)
		})
	})
}

func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, StatusResponse{Configured: h.service.Configured()})
}

func (h *Handler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		core.Unauthorized(w, "not authenticated")
		return
	}

	url, err := h.service.CreateCheckout(
		r.Context(), identity.UserID, identity.Email)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			core.Unavailable(w, "billing is not configured")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, CheckoutResponse{URL: url})
}

func (h *Handler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "not authenticated")
		return
	}

	purchases, err := h.service.ListPurchases(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	out := make([]PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		out = append(out, ToPurchaseResponse(&purchases[i]))
	}

	core.OK(w, PurchaseListResponse{Purchases: out})
}

func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(
		http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		core.BadRequest(w, "unable to read request body")
		return
	}

	err = h.service.HandleWebhook(
		r.Context(), payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotConfigured):
			core.Unavailable(w, "billing is not configured")
		case errors.Is(err, ErrInvalidSignature):
			core.BadRequest(w, "invalid webhook signature")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, WebhookAck{Received: true})
}
