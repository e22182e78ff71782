package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/medora-health/portal-access-service/internal/config"
	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/ports"
)

const (
	keyPrefix  = "portal:session:"
	sessionTTL = 24 * time.Hour
)

// RedisStore is the durable session slot. One key per subject holds the
// JSON-serialized session; an unparseable value is wiped and reported
// as absent so a corrupt slot can never lock a user out.
type RedisStore struct {
	client *redis.Client
	cb     *gobreaker.CircuitBreaker
}

var _ ports.SessionStore = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		cb:     config.NewCircuitBreaker("Redis-Session"),
	}
}

func (s *RedisStore) Get(ctx context.Context, subjectID string) (*domain.Session, error) {
	result, err := s.cb.Execute(func() (interface{}, error) {
		raw, err := s.client.Get(ctx, keyPrefix+subjectID).Result()
		if err == redis.Nil {
			return nil, domain.ErrSessionNotFound
		}
		if err != nil {
			return nil, err
		}
		return raw, nil
	})
	if err != nil {
		return nil, err
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(result.(string)), &sess); err != nil {
		// Self-healing: discard the corrupt copy.
		_ = s.client.Del(ctx, keyPrefix+subjectID).Err()
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

func (s *RedisStore) Set(ctx context.Context, sess *domain.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	_, err = s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.Set(ctx, keyPrefix+sess.SubjectID, raw, sessionTTL).Err()
	})
	return err
}

func (s *RedisStore) Clear(ctx context.Context, subjectID string) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.Del(ctx, keyPrefix+subjectID).Err()
	})
	return err
}
