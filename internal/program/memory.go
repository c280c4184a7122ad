// Wellness Escape | 2026
// memory.go

package program

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
	mu       sync.RWMutex
	programs map[string]Program
	weeks    map[string]Week
	sessions map[string]Session
	checkIns map[string]CheckIn
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		programs: make(map[string]Program),
		weeks:    make(map[string]Week),
		sessions: make(map[string]Session),
		checkIns: make(map[string]CheckIn),
	}
}

func (r *MemoryRepository) CreateProgram(_ context.Context, p *Program) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.programs[p.ID] = *p

	return nil
}

func (r *MemoryRepository) UpdateProgram(_ context.Context, p *Program) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.programs[p.ID]
	if !ok {
		return fmt.Errorf("update program: %w", core.ErrNotFound)
	}

	p.CreatedAt = stored.CreatedAt
	p.UpdatedAt = time.Now()
	r.programs[p.ID] = *p

	return nil
}

func (r *MemoryRepository) GetProgram(
	_ context.Context,
	id string,
) (*Program, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.programs[id]
	if !ok {
		return nil, fmt.Errorf("get program: %w", core.ErrNotFound)
	}

	return &p, nil
}

func (r *MemoryRepository) ListPrograms(
	_ context.Context,
	includeInactive bool,
) ([]Program, error) {
	r.mu.RLock()
	matched := make([]Program, 0, len(r.programs))
	for _, p := range r.programs {
		if !p.IsActive && !includeInactive {
			continue
		}
		matched = append(matched, p)
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	return matched, nil
}

func (r *MemoryRepository) CreateWeek(_ context.Context, w *Week) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.programs[w.ProgramID]; !ok {
		return fmt.Errorf("create week: %w", core.ErrNotFound)
	}

	now := time.Now()
	w.CreatedAt = now
	w.UpdatedAt = now
	r.weeks[w.ID] = *w

	return nil
}

func (r *MemoryRepository) UpdateWeek(_ context.Context, w *Week) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.weeks[w.ID]
	if !ok {
		return fmt.Errorf("update week: %w", core.ErrNotFound)
	}

	w.ProgramID = stored.ProgramID
	w.CreatedAt = stored.CreatedAt
	w.UpdatedAt = time.Now()
	r.weeks[w.ID] = *w

	return nil
}

func (r *MemoryRepository) GetWeek(
	_ context.Context,
	id string,
) (*Week, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.weeks[id]
	if !ok {
		return nil, fmt.Errorf("get week: %w", core.ErrNotFound)
	}

	return &w, nil
}

func (r *MemoryRepository) ListWeeks(
	_ context.Context,
	programID string,
) ([]Week, error) {
	r.mu.RLock()
	matched := make([]Week, 0)
	for _, w := range r.weeks {
		if w.ProgramID == programID {
			matched = append(matched, w)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].WeekNumber < matched[j].WeekNumber
	})

	return matched, nil
}

func (r *MemoryRepository) CreateSession(_ context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	week, ok := r.weeks[s.WeekID]
	if !ok {
		return fmt.Errorf("create session: %w", core.ErrNotFound)
	}

	s.ProgramID = week.ProgramID
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	r.sessions[s.ID] = *s

	return nil
}

func (r *MemoryRepository) UpdateSession(_ context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.sessions[s.ID]
	if !ok {
		return fmt.Errorf("update session: %w", core.ErrNotFound)
	}

	s.ProgramID = stored.ProgramID
	s.WeekID = stored.WeekID
	s.CreatedAt = stored.CreatedAt
	s.UpdatedAt = time.Now()
	r.sessions[s.ID] = *s

	return nil
}

func (r *MemoryRepository) GetSession(
	_ context.Context,
	id string,
) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("get session: %w", core.ErrNotFound)
	}

	return &s, nil
}

func (r *MemoryRepository) ListSessions(
	_ context.Context,
	programID string,
) ([]Session, error) {
	r.mu.RLock()
	matched := make([]Session, 0)
	for _, s := range r.sessions {
		if s.ProgramID == programID {
			matched = append(matched, s)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].OrderIndex < matched[j].OrderIndex
	})

	return matched, nil
}

func (r *MemoryRepository) CreateCheckIn(_ context.Context, c *CheckIn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[c.SessionID]; !ok {
		return fmt.Errorf("create check-in: %w", core.ErrNotFound)
	}

	c.CompletedAt = time.Now()
	r.checkIns[c.ID] = *c

	return nil
}

func (r *MemoryRepository) ListCheckIns(
	_ context.Context,
	userID string,
) ([]CheckIn, error) {
	r.mu.RLock()
	matched := make([]CheckIn, 0)
	for _, c := range r.checkIns {
		if c.UserID == userID {
			matched = append(matched, c)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CompletedAt.After(matched[j].CompletedAt)
	})

	return matched, nil
}
