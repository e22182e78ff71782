package repository

import (
	"context"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/ports"
)

// MemoryUserRepository holds credential records in process memory. It
// serves the mock verification policy and the tests; the SQL repository
// is the interchangeable production implementation.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User // keyed by email, exact match
}

var _ ports.UserRepository = (*MemoryUserRepository)(nil)

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]*domain.User)}
}

// NewSeededUserRepository returns a memory repository preloaded with
// the portal demo accounts.
func NewSeededUserRepository() *MemoryUserRepository {
	r := NewMemoryUserRepository()
	for _, u := range demoUsers() {
		r.Seed(u)
	}
	return r
}

func (r *MemoryUserRepository) Seed(user domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := user
	r.users[user.Email] = &copied
}

func (r *MemoryUserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MemoryUserRepository) Create(ctx context.Context, user domain.User, outboxPayload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Email]; exists {
		return domain.ErrDuplicateEmail
	}
	copied := user
	r.users[user.Email] = &copied
	// Outbox payloads are dropped here: there is no relay behind the
	// in-memory variant.
	return nil
}

func demoUsers() []domain.User {
	now := time.Now().UTC()
	return []domain.User{
		{
			ID:        "u-admin",
			Email:     "admin@hospital.com",
			Name:      "Super Admin",
			Role:      domain.RoleSuperAdmin,
			Password:  mustHash("admin123"),
			CreatedAt: now,
		},
		{
			ID:        "u-drsmith",
			Email:     "dr.smith@hospital.com",
			Name:      "Dr. John Smith",
			Role:      domain.RoleDoctor,
			Password:  mustHash("doctor123"),
			CreatedAt: now,
			Specialty: "Cardiology",
		},
		{
			ID:         "u-njohnson",
			Email:      "nurse.johnson@hospital.com",
			Name:       "Sarah Johnson",
			Role:       domain.RoleNurse,
			Password:   mustHash("nurse123"),
			CreatedAt:  now,
			Department: "Emergency",
		},
		{
			ID:        "u-jdoe",
			Email:     "patient@email.com",
			Name:      "John Doe",
			Role:      domain.RolePatient,
			Password:  mustHash("patient123"),
			CreatedAt: now,
			PatientID: "P001",
		},
	}
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}
