// Wellness Escape | 2026
// memory.go

package user

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wellnessescape/backend/internal/core"
)

// MemoryRepository is the degraded-mode backend used when no database is
// configured. Data does not persist across restarts. Email uniqueness is
// enforced here explicitly since there is no unique index to rely on.
type MemoryRepository struct {
	mu      sync.RWMutex
	users   map[string]UserWithRole
	byEmail map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:   make(map[string]UserWithRole),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryRepository) Create(
	_ context.Context,
	u *User,
	role string,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[u.Email]; exists {
		return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	r.users[u.ID] = UserWithRole{User: *u, Role: role}
	r.byEmail[u.Email] = u.ID

	return nil
}

func (r *MemoryRepository) GetByID(
	_ context.Context,
	id string,
) (*UserWithRole, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}

	return &u, nil
}

func (r *MemoryRepository) GetByEmail(
	_ context.Context,
	email string,
) (*UserWithRole, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}

	u := r.users[id]
	return &u, nil
}

func (r *MemoryRepository) GrantAccess(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("grant access: %w", core.ErrNotFound)
	}

	u.HasAccess = true
	u.UpdatedAt = time.Now()
	r.users[id] = u

	return nil
}

func (r *MemoryRepository) List(
	_ context.Context,
	params ListUsersParams,
) ([]UserWithRole, int, error) {
	params.Normalize()

	r.mu.RLock()
	matched := make([]UserWithRole, 0, len(r.users))
	for _, u := range r.users {
		if params.Search != "" {
			needle := strings.ToLower(params.Search)
			if !strings.Contains(strings.ToLower(u.Email), needle) &&
				!strings.Contains(strings.ToLower(u.Name), needle) {
				continue
			}
		}
		matched = append(matched, u)
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)

	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}

	return matched[start:end], total, nil
}
