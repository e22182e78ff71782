package services

import (
	"context"

	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/ports"
)

// PrescriptionService exposes a patient's prescription list. Issuing
// prescriptions is a doctor-side workflow outside this service; the
// portal only reads.
type PrescriptionService struct {
	repo ports.PrescriptionRepository
}

func NewPrescriptionService(repo ports.PrescriptionRepository) *PrescriptionService {
	return &PrescriptionService{repo: repo}
}

func (s *PrescriptionService) ListForPatient(ctx context.Context, patientID string) ([]domain.Prescription, error) {
	return s.repo.ListByPatient(ctx, patientID)
}
