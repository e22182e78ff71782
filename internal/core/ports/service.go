package ports

import (
	"context"

	"github.com/medora-health/portal-access-service/internal/core/domain"
)

// CredentialVerifier decides accept/reject for a submitted
// (email, password, role) triple. Two policies implement it: remote
// delegation to an upstream endpoint and local record lookup. Both
// return the same session shape and the same failure taxonomy so
// callers stay policy-agnostic.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string, role domain.Role) (*domain.Session, error)
}

type AuthService interface {
	// Login verifies credentials, persists the session to the durable
	// slot, and returns the session with a signed bearer token.
	Login(ctx context.Context, email, password string, role domain.Role) (*domain.Session, string, error)
	Logout(ctx context.Context, subjectID string) error
}

type RegistrationRequest struct {
	Email      string      `json:"email"`
	Name       string      `json:"name"`
	Password   string      `json:"password"`
	Role       domain.Role `json:"role"`
	Specialty  string      `json:"specialty,omitempty"`
	Department string      `json:"department,omitempty"`
	PatientID  string      `json:"patientId,omitempty"`
}

type RegistrationService interface {
	// Register creates an account and immediately authenticates it.
	// A used email yields domain.ErrDuplicateEmail with no partial record.
	Register(ctx context.Context, req RegistrationRequest) (*domain.Session, string, error)
}

type DashboardService interface {
	Compose(role domain.Role) (*domain.Dashboard, error)
}
