package services

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/ports"
)

type RegistrationService struct {
	userRepo   ports.UserRepository
	sessions   ports.SessionStore
	privateKey *rsa.PrivateKey
}

var _ ports.RegistrationService = (*RegistrationService)(nil)

func NewRegistrationService(
	userRepo ports.UserRepository,
	sessions ports.SessionStore,
	privateKey *rsa.PrivateKey,
) *RegistrationService {
	return &RegistrationService{
		userRepo:   userRepo,
		sessions:   sessions,
		privateKey: privateKey,
	}
}

// Register creates the account, writes the user-registered outbox event
// in the same transaction, and authenticates the new user immediately.
// There is no separate confirmation step.
func (s *RegistrationService) Register(ctx context.Context, req ports.RegistrationRequest) (*domain.Session, string, error) {
	if !req.Role.Valid() {
		return nil, "", fmt.Errorf("unsupported role %q", req.Role)
	}

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, "", domain.ErrDuplicateEmail
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		ID:         uuid.NewString(),
		Email:      req.Email,
		Name:       req.Name,
		Role:       req.Role,
		Password:   hashed,
		CreatedAt:  time.Now().UTC(),
		Specialty:  req.Specialty,
		Department: req.Department,
		PatientID:  req.PatientID,
	}

	outboxPayload, err := json.Marshal(ports.UserRegisteredEvent{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		return nil, "", err
	}

	if err := s.userRepo.Create(ctx, user, outboxPayload); err != nil {
		return nil, "", err
	}

	sess := domain.NewSession(&user)
	if err := s.sessions.Set(ctx, sess); err != nil {
		return nil, "", err
	}

	token, err := signSession(s.privateKey, sess)
	if err != nil {
		return nil, "", err
	}
	return sess, token, nil
}
