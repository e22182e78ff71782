// Package mocks provides hand-written implementations of the port
// interfaces for testing. Services depend on the ports, so tests can
// swap these in without a database, Redis, or a broker.
package mocks

import (
	"context"
	"sync"

	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/ports"
)

// MockUserRepository implements ports.UserRepository with in-memory
// storage, call tracking, and error injection.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User // keyed by email

	FindByEmailCalls []string
	CreateCalls      []domain.User
	CreatePayloads   [][]byte

	FindByEmailError error
	CreateError      error
}

var _ ports.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

// SeedUser adds a user for test setup.
func (m *MockUserRepository) SeedUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Email] = user
}

func (m *MockUserRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	m.FindByEmailCalls = append(m.FindByEmailCalls, email)
	m.mu.Unlock()

	if m.FindByEmailError != nil {
		return nil, m.FindByEmailError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserRepository) Create(ctx context.Context, user domain.User, outboxPayload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, user)
	m.CreatePayloads = append(m.CreatePayloads, outboxPayload)

	if m.CreateError != nil {
		return m.CreateError
	}
	if _, exists := m.users[user.Email]; exists {
		return domain.ErrDuplicateEmail
	}
	copied := user
	m.users[user.Email] = &copied
	return nil
}
