package handler

import (
	"net/http"

	"github.com/medora-health/portal-access-service/internal/adapters/middleware"
	"github.com/medora-health/portal-access-service/internal/core/ports"
	"github.com/medora-health/portal-access-service/internal/logger"
)

type DashboardHandler struct {
	dashboards ports.DashboardService
	log        *logger.Logger
}

func NewDashboardHandler(dashboards ports.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards, log: log}
}

// Get composes the dashboard for the caller's own role.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}

	dashboard, err := h.dashboards.Compose(sess.Role)
	if err != nil {
		h.log.WithError(err).Error("dashboard composition failed")
		http.Error(w, "failed to compose dashboard", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}
