package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/medora-health/portal-access-service/internal/config"
	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/ports"
)

// RemoteVerifier delegates credential verification to an upstream
// authentication endpoint. The call is idempotent and has no local side
// effect on failure; no retries, the request context carries the only
// deadline. A circuit breaker shields the upstream once it starts
// failing consecutively.
type RemoteVerifier struct {
	endpoint string
	client   *http.Client
	cb       *gobreaker.CircuitBreaker
}

var _ ports.CredentialVerifier = (*RemoteVerifier)(nil)

func NewRemoteVerifier(endpoint string) *RemoteVerifier {
	return &RemoteVerifier{
		endpoint: endpoint,
		client:   http.DefaultClient,
		cb:       config.NewCircuitBreaker("Remote-Verifier"),
	}
}

type remoteLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type remoteLoginResponse struct {
	User *domain.User `json:"user"`
}

func (v *RemoteVerifier) Verify(ctx context.Context, email, password string, role domain.Role) (*domain.Session, error) {
	body, err := json.Marshal(remoteLoginRequest{
		Email:    email,
		Password: password,
		Role:     string(role),
	})
	if err != nil {
		return nil, err
	}

	result, err := v.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := v.client.Do(req)
		if err != nil {
			return nil, domain.ErrUpstreamUnavailable
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, domain.ErrInvalidCredentials
		}

		var decoded remoteLoginResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return nil, domain.ErrUpstreamUnavailable
		}
		// Absence of a user object is a rejection, not a transport fault.
		if decoded.User == nil {
			return nil, domain.ErrInvalidCredentials
		}
		return decoded.User, nil
	})
	if err != nil {
		switch err {
		case domain.ErrInvalidCredentials, domain.ErrUpstreamUnavailable:
			return nil, err
		default:
			// Breaker open or request construction failure.
			return nil, domain.ErrUpstreamUnavailable
		}
	}

	user := result.(*domain.User)
	if user.Role != role {
		return nil, domain.ErrInvalidCredentials
	}
	return domain.NewSession(user), nil
}
