// Wellness Escape | 2026
// dto.go

package billing

import (
	"time"
)

type CheckoutResponse struct {
	URL string `json:"url"`
}

type StatusResponse struct {
	Configured bool `json:"configured"`
}

type WebhookAck struct {
	Received bool `json:"received"`
}

type PurchaseResponse struct {
	ID          string    `json:"id"`
	AmountTotal *int64    `json:"amount_total"`
	Currency    *string   `json:"currency"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type PurchaseListResponse struct {
	Purchases []PurchaseResponse `json:"purchases"`
}

func ToPurchaseResponse(p *Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:          p.ID,
		AmountTotal: p.AmountTotal,
		Currency:    p.Currency,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
	}
}
