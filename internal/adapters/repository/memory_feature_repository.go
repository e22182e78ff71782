package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/ports"
)

// In-memory feature collections. Each view owns a disjoint store; none
// of this state survives a restart.

type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]domain.Task
}

var _ ports.TaskRepository = (*MemoryTaskRepository)(nil)

func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{tasks: make(map[string]domain.Task)}
}

func (r *MemoryTaskRepository) Insert(ctx context.Context, t domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[t.ID] = t
	return nil
}

func (r *MemoryTaskRepository) Get(ctx context.Context, id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (r *MemoryTaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryTaskRepository) Update(ctx context.Context, t domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[t.ID]; !ok {
		return domain.ErrNotFound
	}
	r.tasks[t.ID] = t
	return nil
}

func (r *MemoryTaskRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

type MemoryAppointmentRepository struct {
	mu           sync.RWMutex
	appointments map[string]domain.Appointment
}

var _ ports.AppointmentRepository = (*MemoryAppointmentRepository)(nil)

func NewMemoryAppointmentRepository() *MemoryAppointmentRepository {
	return &MemoryAppointmentRepository{appointments: make(map[string]domain.Appointment)}
}

func (r *MemoryAppointmentRepository) Insert(ctx context.Context, a domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments[a.ID] = a
	return nil
}

func (r *MemoryAppointmentRepository) Get(ctx context.Context, id string) (*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r *MemoryAppointmentRepository) ListByPatient(ctx context.Context, patientID string) ([]domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Appointment, 0)
	for _, a := range r.appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryAppointmentRepository) Update(ctx context.Context, a domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[a.ID]; !ok {
		return domain.ErrNotFound
	}
	r.appointments[a.ID] = a
	return nil
}

func (r *MemoryAppointmentRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.appointments, id)
	return nil
}

type MemoryAssignmentRepository struct {
	mu          sync.RWMutex
	assignments map[string]domain.Assignment
}

var _ ports.AssignmentRepository = (*MemoryAssignmentRepository)(nil)

func NewMemoryAssignmentRepository() *MemoryAssignmentRepository {
	return &MemoryAssignmentRepository{assignments: make(map[string]domain.Assignment)}
}

func (r *MemoryAssignmentRepository) Insert(ctx context.Context, a domain.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assignments[a.ID] = a
	return nil
}

func (r *MemoryAssignmentRepository) Get(ctx context.Context, id string) (*domain.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.assignments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r *MemoryAssignmentRepository) List(ctx context.Context) ([]domain.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Assignment, 0, len(r.assignments))
	for _, a := range r.assignments {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryAssignmentRepository) Update(ctx context.Context, a domain.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.assignments[a.ID]; !ok {
		return domain.ErrNotFound
	}
	r.assignments[a.ID] = a
	return nil
}

func (r *MemoryAssignmentRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.assignments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.assignments, id)
	return nil
}

type MemoryAvailabilityRepository struct {
	mu      sync.RWMutex
	entries map[string]domain.Availability
}

var _ ports.AvailabilityRepository = (*MemoryAvailabilityRepository)(nil)

func NewMemoryAvailabilityRepository() *MemoryAvailabilityRepository {
	return &MemoryAvailabilityRepository{entries: make(map[string]domain.Availability)}
}

func (r *MemoryAvailabilityRepository) Upsert(ctx context.Context, a domain.Availability) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[a.DoctorID] = a
	return nil
}

func (r *MemoryAvailabilityRepository) Get(ctx context.Context, doctorID string) (*domain.Availability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.entries[doctorID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r *MemoryAvailabilityRepository) List(ctx context.Context) ([]domain.Availability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Availability, 0, len(r.entries))
	for _, a := range r.entries {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type MemoryPrescriptionRepository struct {
	mu            sync.RWMutex
	prescriptions map[string]domain.Prescription
}

var _ ports.PrescriptionRepository = (*MemoryPrescriptionRepository)(nil)

func NewMemoryPrescriptionRepository() *MemoryPrescriptionRepository {
	return &MemoryPrescriptionRepository{prescriptions: make(map[string]domain.Prescription)}
}

func (r *MemoryPrescriptionRepository) Insert(ctx context.Context, p domain.Prescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prescriptions[p.ID] = p
	return nil
}

func (r *MemoryPrescriptionRepository) ListByPatient(ctx context.Context, patientID string) ([]domain.Prescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Prescription, 0)
	for _, p := range r.prescriptions {
		if p.PatientID == patientID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Issued < out[j].Issued })
	return out, nil
}

// MemoryOutbox records appended events without a backing relay. Tests
// inspect Events; the no-Redis dev setup drops them.
type MemoryOutbox struct {
	mu     sync.Mutex
	Events []MemoryOutboxEvent
}

type MemoryOutboxEvent struct {
	EventType string
	Payload   []byte
}

var _ ports.OutboxRepository = (*MemoryOutbox)(nil)

func NewMemoryOutbox() *MemoryOutbox {
	return &MemoryOutbox{}
}

func (o *MemoryOutbox) Add(ctx context.Context, eventType string, payload []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Events = append(o.Events, MemoryOutboxEvent{EventType: eventType, Payload: payload})
	return nil
}
