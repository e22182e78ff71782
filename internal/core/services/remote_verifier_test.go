package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/services"
)

func TestRemoteVerifier_AcceptedUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad upstream request: %v", err)
		}
		if req.Email != "dr.smith@hospital.com" {
			t.Errorf("unexpected email forwarded: %s", req.Email)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": domain.User{
				ID:        "u-drsmith",
				Email:     req.Email,
				Name:      "Dr. John Smith",
				Role:      domain.RoleDoctor,
				Specialty: "Cardiology",
			},
		})
	}))
	defer upstream.Close()

	verifier := services.NewRemoteVerifier(upstream.URL)
	sess, err := verifier.Verify(context.Background(), "dr.smith@hospital.com", "doctor123", domain.RoleDoctor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.SubjectID != "u-drsmith" || sess.RoleAttribute != "Cardiology" {
		t.Errorf("session does not carry the upstream identity: %+v", sess)
	}
}

func TestRemoteVerifier_UpstreamRejectsWithStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	defer upstream.Close()

	verifier := services.NewRemoteVerifier(upstream.URL)
	_, err := verifier.Verify(context.Background(), "dr.smith@hospital.com", "wrong", domain.RoleDoctor)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRemoteVerifier_MissingUserObjectIsRejection(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"user": nil})
	}))
	defer upstream.Close()

	verifier := services.NewRemoteVerifier(upstream.URL)
	_, err := verifier.Verify(context.Background(), "dr.smith@hospital.com", "doctor123", domain.RoleDoctor)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRemoteVerifier_RoleMismatchAfterAccept(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": domain.User{ID: "u-drsmith", Email: "dr.smith@hospital.com", Role: domain.RoleDoctor},
		})
	}))
	defer upstream.Close()

	verifier := services.NewRemoteVerifier(upstream.URL)
	_, err := verifier.Verify(context.Background(), "dr.smith@hospital.com", "doctor123", domain.RoleNurse)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials on role mismatch, got %v", err)
	}
}

func TestRemoteVerifier_UnreachableUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // nothing listens anymore

	verifier := services.NewRemoteVerifier(upstream.URL)
	_, err := verifier.Verify(context.Background(), "dr.smith@hospital.com", "doctor123", domain.RoleDoctor)
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}
