package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/services"
	"github.com/medora-health/portal-access-service/internal/logger"
)

type TaskHandler struct {
	tasks *services.TaskService
	log   *logger.Logger
}

func NewTaskHandler(tasks *services.TaskService, log *logger.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, log: log}
}

type addTaskRequest struct {
	Description string              `json:"description"`
	Priority    domain.TaskPriority `json:"priority"`
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List(r.Context())
	if err != nil {
		h.log.WithError(err).Error("task list failed")
		http.Error(w, "failed to list tasks", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Description == "" {
		http.Error(w, "description is required", http.StatusBadRequest)
		return
	}
	if req.Priority == "" {
		req.Priority = domain.PriorityMedium
	}

	task, err := h.tasks.Add(r.Context(), req.Description, req.Priority)
	if err != nil {
		h.log.WithError(err).Error("task add failed")
		http.Error(w, "failed to add task", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

type transitionTaskRequest struct {
	Status domain.TaskStatus `json:"status"`
}

func (h *TaskHandler) Transition(w http.ResponseWriter, r *http.Request) {
	var req transitionTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Status != domain.TaskPending && req.Status != domain.TaskInProgress && req.Status != domain.TaskCompleted {
		http.Error(w, "status must be pending, in-progress or completed", http.StatusBadRequest)
		return
	}

	task, err := h.tasks.Transition(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}
		h.log.WithError(err).Error("task transition failed")
		http.Error(w, "failed to update task", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Remove(w http.ResponseWriter, r *http.Request) {
	found, err := h.tasks.Remove(r.Context(), r.PathValue("id"))
	if err != nil {
		h.log.WithError(err).Error("task remove failed")
		http.Error(w, "failed to remove task", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"found": found})
}
