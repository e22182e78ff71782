package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/medora-health/portal-access-service/internal/adapters/repository"
	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/services"
)

func TestTaskService_AddAndList(t *testing.T) {
	svc := services.NewTaskService(repository.NewMemoryTaskRepository())
	ctx := context.Background()

	task, err := svc.Add(ctx, "Check vitals for room 204", domain.PriorityHigh)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Status != domain.TaskPending {
		t.Errorf("new tasks start pending, got %s", task.Status)
	}
	if task.ID == "" {
		t.Error("expected a generated id")
	}

	tasks, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected one task, got %d", len(tasks))
	}
}

func TestTaskService_TransitionAnyToAny(t *testing.T) {
	svc := services.NewTaskService(repository.NewMemoryTaskRepository())
	ctx := context.Background()

	task, err := svc.Add(ctx, "Administer medication", domain.PriorityMedium)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// No transition graph: completed can go straight back to pending.
	for _, status := range []domain.TaskStatus{
		domain.TaskCompleted,
		domain.TaskPending,
		domain.TaskInProgress,
		domain.TaskInProgress, // re-applying the current status is a no-op
	} {
		updated, err := svc.Transition(ctx, task.ID, status)
		if err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("expected status %s, got %s", status, updated.Status)
		}
	}
}

func TestTaskService_TransitionUnknownID(t *testing.T) {
	svc := services.NewTaskService(repository.NewMemoryTaskRepository())

	_, err := svc.Transition(context.Background(), "missing", domain.TaskCompleted)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTaskService_RemoveIsIdempotent(t *testing.T) {
	svc := services.NewTaskService(repository.NewMemoryTaskRepository())
	ctx := context.Background()

	task, err := svc.Add(ctx, "Update patient chart", domain.PriorityLow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	existed, err := svc.Remove(ctx, task.ID)
	if err != nil || !existed {
		t.Fatalf("first remove: existed=%v err=%v", existed, err)
	}

	// Second remove reports absence without failing.
	existed, err = svc.Remove(ctx, task.ID)
	if err != nil {
		t.Fatalf("second remove errored: %v", err)
	}
	if existed {
		t.Error("second remove reported the task still existed")
	}
}
