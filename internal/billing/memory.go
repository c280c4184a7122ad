// Wellness Escape | 2026
// memory.go

package billing

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/wellnessescape/backend/internal/core"
)

// MemoryRepository is the degraded-mode backend used when no database is
// configured. Checkout session uniqueness is enforced here explicitly since
// there is no unique index to rely on.
type MemoryRepository struct {
	mu        sync.RWMutex
	bySession map[string]Purchase
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		bySession: make(map[string]Purchase),
	}
}

func (r *MemoryRepository) Create(_ context.Context, p *Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bySession[p.StripeCheckoutSessionID]; exists {
		return fmt.Errorf("create purchase: %w", core.ErrDuplicateKey)
	}

	p.CreatedAt = time.Now()
	r.bySession[p.StripeCheckoutSessionID] = *p

	return nil
}

func (r *MemoryRepository) ListByUser(
	_ context.Context,
	userID string,
) ([]Purchase, error) {
	r.mu.RLock()
	matched := make([]Purchase, 0)
	for _, p := range r.bySession {
		if p.UserID == userID {
			matched = append(matched, p)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return matched, nil
}
