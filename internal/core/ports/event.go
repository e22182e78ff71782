package ports

import (
	"context"
)

const (
	EventUserRegistered    = "user_registered"
	EventAppointmentBooked = "appointment_booked"
)

type UserRegisteredEvent struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type AppointmentBookedEvent struct {
	AppointmentID string `json:"appointment_id"`
	PatientID     string `json:"patient_id"`
	Doctor        string `json:"doctor"`
	Department    string `json:"department"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}

// PortalEventPublisher delivers portal events to the message broker.
// The API service never publishes directly; it writes outbox rows and
// the relay drains them through this port.
type PortalEventPublisher interface {
	PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error
	PublishAppointmentBooked(ctx context.Context, evt AppointmentBookedEvent) error
}
