package handler_test

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/medora-health/portal-access-service/internal/adapters/handler"
	"github.com/medora-health/portal-access-service/internal/adapters/middleware"
	"github.com/medora-health/portal-access-service/internal/adapters/repository"
	"github.com/medora-health/portal-access-service/internal/adapters/session"
	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/ports"
	"github.com/medora-health/portal-access-service/internal/core/services"
	"github.com/medora-health/portal-access-service/internal/logger"
)

// portalFixture wires the real services against the seeded demo users,
// the way cmd/api does without a database.
type portalFixture struct {
	auth         *handler.AuthHandler
	registration *handler.RegistrationHandler
	guard        *middleware.AuthMiddleware
	sessions     *session.MemoryStore
}

func newPortalFixture(t *testing.T) *portalFixture {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	log := logger.New("error")
	userRepo := repository.NewSeededUserRepository()
	sessions := session.NewMemoryStore()

	authService := services.NewPortalAuthService(services.NewLocalVerifier(userRepo), sessions, key)
	registrationService := services.NewRegistrationService(userRepo, sessions, key)

	return &portalFixture{
		auth:         handler.NewAuthHandler(authService, log),
		registration: handler.NewRegistrationHandler(registrationService, log),
		guard:        middleware.NewAuthMiddleware(&key.PublicKey, sessions, log),
		sessions:     sessions,
	}
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestLoginHandler_DemoUsers(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		role     domain.Role
	}{
		{"super_admin", "admin@hospital.com", "admin123", domain.RoleSuperAdmin},
		{"doctor", "dr.smith@hospital.com", "doctor123", domain.RoleDoctor},
		{"nurse", "nurse.johnson@hospital.com", "nurse123", domain.RoleNurse},
		{"patient", "patient@email.com", "patient123", domain.RolePatient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPortalFixture(t)
			rec := postJSON(t, f.auth.Login, "/api/auth/login", handler.LoginRequest{
				Email: tt.email, Password: tt.password, Role: tt.role,
			})

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}

			var resp handler.AuthResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("invalid response body: %v", err)
			}
			if resp.Token == "" {
				t.Error("expected a bearer token")
			}
			if resp.User == nil || resp.User.Role != tt.role {
				t.Errorf("expected %s session, got %+v", tt.role, resp.User)
			}
		})
	}
}

func TestLoginHandler_RejectionsShareOneMessage(t *testing.T) {
	f := newPortalFixture(t)

	tests := []struct {
		name string
		req  handler.LoginRequest
	}{
		{"wrong_password", handler.LoginRequest{Email: "dr.smith@hospital.com", Password: "nope", Role: domain.RoleDoctor}},
		{"wrong_role", handler.LoginRequest{Email: "dr.smith@hospital.com", Password: "doctor123", Role: domain.RolePatient}},
		{"unknown_email", handler.LoginRequest{Email: "ghost@hospital.com", Password: "doctor123", Role: domain.RoleDoctor}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, f.auth.Login, "/api/auth/login", tt.req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			var resp handler.AuthResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("invalid response body: %v", err)
			}
			// The same message for every rejection cause, so the
			// response does not reveal which part was wrong.
			if resp.Message != "Invalid credentials or role mismatch" {
				t.Errorf("unexpected rejection message: %q", resp.Message)
			}
			if resp.Token != "" {
				t.Error("rejection must not carry a token")
			}
		})
	}
}

func TestLoginHandler_UnsupportedRole(t *testing.T) {
	f := newPortalFixture(t)
	rec := postJSON(t, f.auth.Login, "/api/auth/login", handler.LoginRequest{
		Email: "admin@hospital.com", Password: "admin123", Role: domain.Role("root"),
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

type failingVerifier struct{ err error }

func (v failingVerifier) Verify(ctx context.Context, email, password string, role domain.Role) (*domain.Session, error) {
	return nil, v.err
}

func TestLoginHandler_UpstreamUnavailable(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	authService := services.NewPortalAuthService(
		failingVerifier{err: domain.ErrUpstreamUnavailable},
		session.NewMemoryStore(),
		key,
	)
	h := handler.NewAuthHandler(authService, logger.New("error"))

	rec := postJSON(t, h.Login, "/api/auth/login", handler.LoginRequest{
		Email: "dr.smith@hospital.com", Password: "doctor123", Role: domain.RoleDoctor,
	})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

// Full round trip: login, read the session back, log out, and watch the
// guard fall back to the redirect.
func TestLoginSessionLogoutRoundTrip(t *testing.T) {
	f := newPortalFixture(t)

	rec := postJSON(t, f.auth.Login, "/api/auth/login", handler.LoginRequest{
		Email: "nurse.johnson@hospital.com", Password: "nurse123", Role: domain.RoleNurse,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	var login handler.AuthResponse
	if err := json.NewDecoder(rec.Body).Decode(&login); err != nil {
		t.Fatalf("invalid login response: %v", err)
	}

	sessionRoute := f.guard.RequireRoles(domain.Roles, http.HandlerFunc(f.auth.Session))
	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec = httptest.NewRecorder()
	sessionRoute.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("session read failed: %d", rec.Code)
	}
	var sess domain.Session
	if err := json.NewDecoder(rec.Body).Decode(&sess); err != nil {
		t.Fatalf("invalid session body: %v", err)
	}
	if sess.DisplayName != "Sarah Johnson" || sess.RoleAttribute != "Emergency" {
		t.Errorf("unexpected session identity: %+v", sess)
	}

	logoutRoute := f.guard.RequireRoles(domain.Roles, http.HandlerFunc(f.auth.Logout))
	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec = httptest.NewRecorder()
	logoutRoute.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("logout failed: %d", rec.Code)
	}

	// The token still verifies but the slot is gone.
	req = httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec = httptest.NewRecorder()
	sessionRoute.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect after logout, got %d", rec.Code)
	}
}

var _ ports.CredentialVerifier = failingVerifier{}
