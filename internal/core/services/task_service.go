package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/ports"
)

// TaskService manages the nurse task list. Each view owns its own
// collection; there is no cross-view referential integrity.
type TaskService struct {
	repo ports.TaskRepository
}

func NewTaskService(repo ports.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Add(ctx context.Context, description string, priority domain.TaskPriority) (*domain.Task, error) {
	task := domain.Task{
		ID:          uuid.NewString(),
		Description: description,
		Priority:    priority,
		Status:      domain.TaskPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Transition moves a task to the target status. Any status is reachable
// from any other, and re-applying the current status is a no-op.
func (s *TaskService) Transition(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error) {
	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Status = status
	if err := s.repo.Update(ctx, *task); err != nil {
		return nil, err
	}
	return task, nil
}

// Remove deletes a task and reports whether it existed. Removing an
// already-removed task is a no-op, not an error.
func (s *TaskService) Remove(ctx context.Context, id string) (bool, error) {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *TaskService) List(ctx context.Context) ([]domain.Task, error) {
	return s.repo.List(ctx)
}
