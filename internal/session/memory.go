// Wellness Escape | 2026
// memory.go

package session

import (
	"context"
	"sync"
	"time"

	"github.com/wellnessescape/backend/internal/core"
)

const janitorInterval = 10 * time.Minute

// MemoryStore keeps sessions in process memory. Used when Redis is not
// configured; sessions do not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	stop     chan struct{}
	stopOnce sync.Once
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]Session),
		stop:     make(chan struct{}),
	}
	go s.janitor()
	return s
}

func (s *MemoryStore) Save(
	_ context.Context,
	tokenHash string,
	sess Session,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[tokenHash] = sess
	return nil
}

func (s *MemoryStore) Get(
	_ context.Context,
	tokenHash string,
) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[tokenHash]
	s.mu.RUnlock()

	if !ok || sess.IsExpired() {
		return nil, core.ErrNotFound
	}

	return &sess, nil
}

func (s *MemoryStore) Delete(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, tokenHash)
	return nil
}

func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *MemoryStore) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			for hash, sess := range s.sessions {
				if sess.IsExpired() {
					delete(s.sessions, hash)
				}
			}
			s.mu.Unlock()
		}
	}
}
