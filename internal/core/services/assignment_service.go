package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/ports"
)

// AssignmentService manages nurse-doctor shift assignments.
type AssignmentService struct {
	repo ports.AssignmentRepository
}

func NewAssignmentService(repo ports.AssignmentRepository) *AssignmentService {
	return &AssignmentService{repo: repo}
}

func (s *AssignmentService) Add(ctx context.Context, doctor, nurse string, shift domain.Shift) (*domain.Assignment, error) {
	a := domain.Assignment{
		ID:        uuid.NewString(),
		Doctor:    doctor,
		Nurse:     nurse,
		Shift:     shift,
		Status:    domain.AssignmentActive,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AssignmentService) Transition(ctx context.Context, id string, status domain.AssignmentStatus) (*domain.Assignment, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Status = status
	if err := s.repo.Update(ctx, *a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssignmentService) Remove(ctx context.Context, id string) (bool, error) {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *AssignmentService) List(ctx context.Context) ([]domain.Assignment, error) {
	return s.repo.List(ctx)
}
