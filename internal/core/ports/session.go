package ports

import (
	"context"

	"github.com/medora-health/portal-access-service/internal/core/domain"
)

// SessionStore is the durable session slot. Get returns
// domain.ErrSessionNotFound when the slot is empty; an unparseable
// durable copy is discarded and reported as absent, never as an error
// the caller must handle.
type SessionStore interface {
	Get(ctx context.Context, subjectID string) (*domain.Session, error)
	Set(ctx context.Context, sess *domain.Session) error
	Clear(ctx context.Context, subjectID string) error
}
