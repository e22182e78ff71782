package services

import (
	"context"
	"errors"

	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/ports"
)

// LocalVerifier checks credentials against the user repository. Email
// comparison is exact: no case folding, no partial matching. The role
// is part of the identity key, so a correct email/password pair with a
// mismatched role is rejected the same way as a wrong password.
type LocalVerifier struct {
	userRepo ports.UserRepository
}

var _ ports.CredentialVerifier = (*LocalVerifier)(nil)

func NewLocalVerifier(userRepo ports.UserRepository) *LocalVerifier {
	return &LocalVerifier{userRepo: userRepo}
}

func (v *LocalVerifier) Verify(ctx context.Context, email, password string, role domain.Role) (*domain.Session, error) {
	user, err := v.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPasswordHash(password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}
	if user.Role != role {
		return nil, domain.ErrInvalidCredentials
	}

	return domain.NewSession(user), nil
}
