package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/medora-health/portal-access-service/internal/adapters/middleware"
	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/ports"
	"github.com/medora-health/portal-access-service/internal/logger"
)

type RegistrationHandler struct {
	registrationService ports.RegistrationService
	log                 *logger.Logger
}

func NewRegistrationHandler(registration ports.RegistrationService, log *logger.Logger) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registration, log: log}
}

func (h *RegistrationHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ports.RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		http.Error(w, "email, name and password are required", http.StatusBadRequest)
		return
	}
	if !req.Role.Valid() {
		http.Error(w, "Unsupported role", http.StatusBadRequest)
		return
	}

	sess, token, err := h.registrationService.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			middleware.AuthAttempts.WithLabelValues("signup", "duplicate").Inc()
			writeJSON(w, http.StatusConflict, AuthResponse{Message: domain.ErrDuplicateEmail.Error()})
			return
		}
		h.log.WithError(err).Error("registration failed")
		middleware.AuthAttempts.WithLabelValues("signup", "error").Inc()
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Message: "Registration failed"})
		return
	}

	middleware.AuthAttempts.WithLabelValues("signup", "accepted").Inc()
	h.log.WithSubject(sess.SubjectID).Infof("registered as %s", sess.Role)
	writeJSON(w, http.StatusCreated, AuthResponse{
		Message: "Account created successfully",
		Token:   token,
		User:    sess,
	})
}
