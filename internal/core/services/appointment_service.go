package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/ports"
)

type BookingRequest struct {
	Doctor     string `json:"doctor"`
	Department string `json:"department"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Reason     string `json:"reason,omitempty"`
}

// AppointmentService manages a patient's appointment list. Bookings
// also leave an outbox event so downstream consumers (reminders,
// scheduling) learn about them through the relay.
type AppointmentService struct {
	repo   ports.AppointmentRepository
	outbox ports.OutboxRepository
}

func NewAppointmentService(repo ports.AppointmentRepository, outbox ports.OutboxRepository) *AppointmentService {
	return &AppointmentService{repo: repo, outbox: outbox}
}

func (s *AppointmentService) Book(ctx context.Context, patientID string, req BookingRequest) (*domain.Appointment, error) {
	apt := domain.Appointment{
		ID:         uuid.NewString(),
		PatientID:  patientID,
		Doctor:     req.Doctor,
		Department: req.Department,
		Date:       req.Date,
		Time:       req.Time,
		Reason:     req.Reason,
		Status:     domain.AppointmentUpcoming,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, apt); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(ports.AppointmentBookedEvent{
		AppointmentID: apt.ID,
		PatientID:     apt.PatientID,
		Doctor:        apt.Doctor,
		Department:    apt.Department,
		Date:          apt.Date,
		Time:          apt.Time,
	})
	if err != nil {
		return nil, err
	}
	if err := s.outbox.Add(ctx, ports.EventAppointmentBooked, payload); err != nil {
		return nil, err
	}
	return &apt, nil
}

func (s *AppointmentService) Transition(ctx context.Context, id string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	apt.Status = status
	if err := s.repo.Update(ctx, *apt); err != nil {
		return nil, err
	}
	return apt, nil
}

func (s *AppointmentService) Remove(ctx context.Context, id string) (bool, error) {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *AppointmentService) ListForPatient(ctx context.Context, patientID string) ([]domain.Appointment, error) {
	return s.repo.ListByPatient(ctx, patientID)
}
