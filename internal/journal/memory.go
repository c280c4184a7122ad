// Wellness Escape | 2026
// memory.go

package journal

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/wellnessescape/backend/internal/core"
)

// MemoryRepository is the degraded-mode backend used when no database is
// configured.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		entries: make(map[string]Entry),
	}
}

func (r *MemoryRepository) Create(_ context.Context, e *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	r.entries[e.ID] = *e

	return nil
}

func (r *MemoryRepository) Get(
	_ context.Context,
	userID, id string,
) (*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok || e.UserID != userID {
		return nil, fmt.Errorf("get journal entry: %w", core.ErrNotFound)
	}

	return &e, nil
}

func (r *MemoryRepository) ListByUser(
	_ context.Context,
	userID string,
) ([]Entry, error) {
	r.mu.RLock()
	matched := make([]Entry, 0)
	for _, e := range r.entries {
		if e.UserID == userID {
			matched = append(matched, e)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return matched, nil
}

func (r *MemoryRepository) Update(_ context.Context, e *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.entries[e.ID]
	if !ok || stored.UserID != e.UserID {
		return fmt.Errorf("update journal entry: %w", core.ErrNotFound)
	}

	e.SessionID = stored.SessionID
	e.CreatedAt = stored.CreatedAt
	e.UpdatedAt = time.Now()
	r.entries[e.ID] = *e

	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok || e.UserID != userID {
		return fmt.Errorf("delete journal entry: %w", core.ErrNotFound)
	}

	delete(r.entries, id)

	return nil
}
