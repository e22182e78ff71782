package mocks

import (
	"context"
	"sync"

	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/ports"
)

// MockSessionStore implements ports.SessionStore with error injection,
// used to exercise the hydration-failure path of the route guard.
type MockSessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session

	SetCalls   []string
	ClearCalls []string

	GetError   error
	SetError   error
	ClearError error
}

var _ ports.SessionStore = (*MockSessionStore)(nil)

func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{sessions: make(map[string]*domain.Session)}
}

func (m *MockSessionStore) Get(ctx context.Context, subjectID string) (*domain.Session, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[subjectID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := *sess
	return &copied, nil
}

func (m *MockSessionStore) Set(ctx context.Context, sess *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls = append(m.SetCalls, sess.SubjectID)
	if m.SetError != nil {
		return m.SetError
	}
	copied := *sess
	m.sessions[sess.SubjectID] = &copied
	return nil
}

func (m *MockSessionStore) Clear(ctx context.Context, subjectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls = append(m.ClearCalls, subjectID)
	if m.ClearError != nil {
		return m.ClearError
	}
	delete(m.sessions, subjectID)
	return nil
}
