package session

import (
	"context"
	"sync"

	"github.com/eventora/backoffice/internal/models"
)

// MemoryStore is a mutex-guarded in-process Store. It backs tests and the
// non-persistent profile (no session survives a restart).
type MemoryStore struct {
	mu   sync.RWMutex
	sess models.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess, nil
}

func (s *MemoryStore) Save(ctx context.Context, sess models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = sess
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = models.Session{}
	return nil
}
