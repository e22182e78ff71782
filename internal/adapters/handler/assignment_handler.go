package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/services"
	"github.com/medora-health/portal-access-service/internal/logger"
)

type AssignmentHandler struct {
	assignments *services.AssignmentService
	log         *logger.Logger
}

func NewAssignmentHandler(assignments *services.AssignmentService, log *logger.Logger) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments, log: log}
}

type addAssignmentRequest struct {
	Doctor string       `json:"doctor"`
	Nurse  string       `json:"nurse"`
	Shift  domain.Shift `json:"shift"`
}

func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.assignments.List(r.Context())
	if err != nil {
		h.log.WithError(err).Error("assignment list failed")
		http.Error(w, "failed to list assignments", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, assignments)
}

func (h *AssignmentHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Doctor == "" || req.Nurse == "" {
		http.Error(w, "doctor and nurse are required", http.StatusBadRequest)
		return
	}
	if req.Shift == "" {
		req.Shift = domain.ShiftMorning
	}

	a, err := h.assignments.Add(r.Context(), req.Doctor, req.Nurse, req.Shift)
	if err != nil {
		h.log.WithError(err).Error("assignment add failed")
		http.Error(w, "failed to add assignment", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

type transitionAssignmentRequest struct {
	Status domain.AssignmentStatus `json:"status"`
}

func (h *AssignmentHandler) Transition(w http.ResponseWriter, r *http.Request) {
	var req transitionAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Status != domain.AssignmentActive && req.Status != domain.AssignmentEnded {
		http.Error(w, "status must be active or ended", http.StatusBadRequest)
		return
	}

	a, err := h.assignments.Transition(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "assignment not found", http.StatusNotFound)
			return
		}
		h.log.WithError(err).Error("assignment transition failed")
		http.Error(w, "failed to update assignment", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AssignmentHandler) Remove(w http.ResponseWriter, r *http.Request) {
	found, err := h.assignments.Remove(r.Context(), r.PathValue("id"))
	if err != nil {
		h.log.WithError(err).Error("assignment remove failed")
		http.Error(w, "failed to remove assignment", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"found": found})
}
