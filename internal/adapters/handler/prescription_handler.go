package handler

import (
	"net/http"

	"github.com/medora-health/portal-access-service/internal/adapters/middleware"
	"github.com/medora-health/portal-access-service/internal/core/services"
	"github.com/medora-health/portal-access-service/internal/logger"
)

type PrescriptionHandler struct {
	prescriptions *services.PrescriptionService
	log           *logger.Logger
}

func NewPrescriptionHandler(prescriptions *services.PrescriptionService, log *logger.Logger) *PrescriptionHandler {
	return &PrescriptionHandler{prescriptions: prescriptions, log: log}
}

// List returns the caller's own prescriptions.
func (h *PrescriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}

	prescriptions, err := h.prescriptions.ListForPatient(r.Context(), sess.SubjectID)
	if err != nil {
		h.log.WithError(err).Error("prescription list failed")
		http.Error(w, "failed to list prescriptions", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, prescriptions)
}
