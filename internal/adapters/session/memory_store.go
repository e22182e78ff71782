package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/ports"
)

// MemoryStore keeps sessions in process memory with the same contract
// as the Redis slot, including the corrupt-copy self-healing. Used when
// no Redis address is configured and throughout the tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ ports.SessionStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, subjectID string) (*domain.Session, error) {
	s.mu.RLock()
	raw, ok := s.data[subjectID]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		s.mu.Lock()
		delete(s.data, subjectID)
		s.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

func (s *MemoryStore) Set(ctx context.Context, sess *domain.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[sess.SubjectID] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, subjectID string) error {
	s.mu.Lock()
	delete(s.data, subjectID)
	s.mu.Unlock()
	return nil
}
