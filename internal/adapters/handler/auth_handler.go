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

type AuthHandler struct {
	authService ports.AuthService
	log         *logger.Logger
}

func NewAuthHandler(auth ports.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{authService: auth, log: log}
}

type LoginRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type AuthResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token,omitempty"`
	User    *domain.Session `json:"user,omitempty"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !req.Role.Valid() {
		http.Error(w, "unsupported role", http.StatusBadRequest)
		return
	}

	sess, token, err := h.authService.Login(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			middleware.AuthAttempts.WithLabelValues("login", "rejected").Inc()
			writeJSON(w, http.StatusUnauthorized, AuthResponse{Message: "Invalid credentials or role mismatch"})
		case errors.Is(err, domain.ErrUpstreamUnavailable):
			middleware.AuthAttempts.WithLabelValues("login", "unavailable").Inc()
			writeJSON(w, http.StatusBadGateway, AuthResponse{Message: "Login failed. Please try again."})
		default:
			h.log.WithError(err).Error("login failed")
			middleware.AuthAttempts.WithLabelValues("login", "error").Inc()
			writeJSON(w, http.StatusInternalServerError, AuthResponse{Message: "Login failed. Please try again."})
		}
		return
	}

	middleware.AuthAttempts.WithLabelValues("login", "accepted").Inc()
	h.log.WithSubject(sess.SubjectID).Infof("login as %s", sess.Role)
	writeJSON(w, http.StatusOK, AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    sess,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}

	if err := h.authService.Logout(r.Context(), sess.SubjectID); err != nil {
		h.log.WithError(err).Error("logout failed")
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{Message: "Logged out successfully"})
}

// Session answers with the caller's hydrated session.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
