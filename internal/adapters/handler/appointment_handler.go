package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/medora-health/portal-access-service/internal/adapters/middleware"
	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/services"
	"github.com/medora-health/portal-access-service/internal/logger"
)

type AppointmentHandler struct {
	appointments *services.AppointmentService
	log          *logger.Logger
}

func NewAppointmentHandler(appointments *services.AppointmentService, log *logger.Logger) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments, log: log}
}

// List returns the caller's own appointments.
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}

	appointments, err := h.appointments.ListForPatient(r.Context(), sess.SubjectID)
	if err != nil {
		h.log.WithError(err).Error("appointment list failed")
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}

func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}

	var req services.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Doctor == "" || req.Date == "" || req.Time == "" {
		http.Error(w, "doctor, date and time are required", http.StatusBadRequest)
		return
	}

	apt, err := h.appointments.Book(r.Context(), sess.SubjectID, req)
	if err != nil {
		h.log.WithError(err).Error("appointment booking failed")
		http.Error(w, "failed to book appointment", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, apt)
}

type transitionAppointmentRequest struct {
	Status domain.AppointmentStatus `json:"status"`
}

func (h *AppointmentHandler) Transition(w http.ResponseWriter, r *http.Request) {
	var req transitionAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Status != domain.AppointmentUpcoming && req.Status != domain.AppointmentCompleted && req.Status != domain.AppointmentCancelled {
		http.Error(w, "status must be upcoming, completed or cancelled", http.StatusBadRequest)
		return
	}

	apt, err := h.appointments.Transition(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		h.log.WithError(err).Error("appointment transition failed")
		http.Error(w, "failed to update appointment", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, apt)
}

func (h *AppointmentHandler) Remove(w http.ResponseWriter, r *http.Request) {
	found, err := h.appointments.Remove(r.Context(), r.PathValue("id"))
	if err != nil {
		h.log.WithError(err).Error("appointment remove failed")
		http.Error(w, "failed to remove appointment", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"found": found})
}
