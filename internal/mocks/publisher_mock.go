package mocks

import (
	"context"
	"sync"

	"github.com/medora-health/portal-access-service/internal/core/ports"
)

// MockPublisher records published portal events.
type MockPublisher struct {
	mu sync.Mutex

	UserRegisteredEvents    []ports.UserRegisteredEvent
	AppointmentBookedEvents []ports.AppointmentBookedEvent

	PublishError error
}

var _ ports.PortalEventPublisher = (*MockPublisher)(nil)

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) PublishUserRegistered(ctx context.Context, evt ports.UserRegisteredEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PublishError != nil {
		return m.PublishError
	}
	m.UserRegisteredEvents = append(m.UserRegisteredEvents, evt)
	return nil
}

func (m *MockPublisher) PublishAppointmentBooked(ctx context.Context, evt ports.AppointmentBookedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PublishError != nil {
		return m.PublishError
	}
	m.AppointmentBookedEvents = append(m.AppointmentBookedEvents, evt)
	return nil
}
