package services

import (
	"context"
	"crypto/rsa"

	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/ports"
)

// PortalAuthService ties a credential verification policy to the
// durable session slot. It is agnostic to which policy it holds.
type PortalAuthService struct {
	verifier   ports.CredentialVerifier
	sessions   ports.SessionStore
	privateKey *rsa.PrivateKey
}

var _ ports.AuthService = (*PortalAuthService)(nil)

func NewPortalAuthService(
	verifier ports.CredentialVerifier,
	sessions ports.SessionStore,
	privateKey *rsa.PrivateKey,
) *PortalAuthService {
	return &PortalAuthService{
		verifier:   verifier,
		sessions:   sessions,
		privateKey: privateKey,
	}
}

func (s *PortalAuthService) Login(ctx context.Context, email, password string, role domain.Role) (*domain.Session, string, error) {
	sess, err := s.verifier.Verify(ctx, email, password, role)
	if err != nil {
		return nil, "", err
	}

	// Last write wins: two concurrent logins for the same subject race
	// on the slot, which is acceptable for a convenience cache.
	if err := s.sessions.Set(ctx, sess); err != nil {
		return nil, "", err
	}

	token, err := signSession(s.privateKey, sess)
	if err != nil {
		return nil, "", err
	}
	return sess, token, nil
}

func (s *PortalAuthService) Logout(ctx context.Context, subjectID string) error {
	return s.sessions.Clear(ctx, subjectID)
}
