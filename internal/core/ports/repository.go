package ports

import (
	"context"

	"github.com/medora-health/portal-access-service/internal/core/domain"
)

// UserRepository is the credential-record source behind the verifier.
// Implementations: Postgres (production) and in-memory (mock policy,
// tests). FindByEmail returns domain.ErrNotFound when no record exists.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create persists a user and, when outboxPayload is non-nil, an
	// outbox event in the same transaction.
	Create(ctx context.Context, user domain.User, outboxPayload []byte) error
}

type TaskRepository interface {
	Insert(ctx context.Context, t domain.Task) error
	Get(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	Update(ctx context.Context, t domain.Task) error
	Delete(ctx context.Context, id string) error
}

type AppointmentRepository interface {
	Insert(ctx context.Context, a domain.Appointment) error
	Get(ctx context.Context, id string) (*domain.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]domain.Appointment, error)
	Update(ctx context.Context, a domain.Appointment) error
	Delete(ctx context.Context, id string) error
}

type AssignmentRepository interface {
	Insert(ctx context.Context, a domain.Assignment) error
	Get(ctx context.Context, id string) (*domain.Assignment, error)
	List(ctx context.Context) ([]domain.Assignment, error)
	Update(ctx context.Context, a domain.Assignment) error
	Delete(ctx context.Context, id string) error
}

type AvailabilityRepository interface {
	Upsert(ctx context.Context, a domain.Availability) error
	Get(ctx context.Context, doctorID string) (*domain.Availability, error)
	List(ctx context.Context) ([]domain.Availability, error)
}

// OutboxRepository appends a pending event row for the relay to drain.
type OutboxRepository interface {
	Add(ctx context.Context, eventType string, payload []byte) error
}

type PrescriptionRepository interface {
	Insert(ctx context.Context, p domain.Prescription) error
	ListByPatient(ctx context.Context, patientID string) ([]domain.Prescription, error)
}
