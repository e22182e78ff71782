package services

import (
	"context"
	"time"

	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/ports"
)

type AvailabilityUpdate struct {
	Status domain.AvailabilityStatus `json:"status"`
	From   string                    `json:"from,omitempty"`
	To     string                    `json:"to,omitempty"`
	Note   string                    `json:"note,omitempty"`
}

// AvailabilityService tracks doctor availability status. Doctors update
// their own entry; nurses and admins read the board.
type AvailabilityService struct {
	repo ports.AvailabilityRepository
}

func NewAvailabilityService(repo ports.AvailabilityRepository) *AvailabilityService {
	return &AvailabilityService{repo: repo}
}

func (s *AvailabilityService) SetStatus(ctx context.Context, sess *domain.Session, upd AvailabilityUpdate) (*domain.Availability, error) {
	a := domain.Availability{
		DoctorID:  sess.SubjectID,
		Name:      sess.DisplayName,
		Specialty: sess.RoleAttribute,
		Status:    upd.Status,
		From:      upd.From,
		To:        upd.To,
		Note:      upd.Note,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.repo.Upsert(ctx, a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AvailabilityService) List(ctx context.Context) ([]domain.Availability, error) {
	return s.repo.List(ctx)
}
