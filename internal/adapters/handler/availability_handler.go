package handler

import (
	"encoding/json"
	"net/http"

	"github.com/medora-health/portal-access-service/internal/adapters/middleware"
	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/services"
	"github.com/medora-health/portal-access-service/internal/logger"
)

type AvailabilityHandler struct {
	availability *services.AvailabilityService
	log          *logger.Logger
}

func NewAvailabilityHandler(availability *services.AvailabilityService, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability, log: log}
}

func (h *AvailabilityHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.availability.List(r.Context())
	if err != nil {
		h.log.WithError(err).Error("availability list failed")
		http.Error(w, "failed to list availability", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// SetStatus updates the caller's own availability entry. Only doctors
// may write; the board is readable by every role the page admits.
func (h *AvailabilityHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}
	if sess.Role != domain.RoleDoctor {
		http.Error(w, "only doctors can update availability", http.StatusForbidden)
		return
	}

	var req services.AvailabilityUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Status != domain.DoctorAvailable && req.Status != domain.DoctorUnavailable {
		http.Error(w, "status must be available or unavailable", http.StatusBadRequest)
		return
	}

	entry, err := h.availability.SetStatus(r.Context(), sess, req)
	if err != nil {
		h.log.WithError(err).Error("availability update failed")
		http.Error(w, "failed to update availability", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
