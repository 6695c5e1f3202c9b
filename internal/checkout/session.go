package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tourflo/internal/shared/constants"
	"tourflo/pkg/cache"
)

// ErrSessionNotFound is returned when a checkout session has expired or
// never existed
var ErrSessionNotFound = errors.New("checkout session not found")

// Session is one traveler's in-progress checkout. It lives in Redis
// under a TTL so abandoned checkouts clean themselves up.
type Session struct {
	ID           string     `json:"id"`
	UserID       *uuid.UUID `json:"user_id,omitempty"`
	ExperienceID uuid.UUID  `json:"experience_id"`
	SlotID       uuid.UUID  `json:"slot_id"`
	Flow         *Flow      `json:"flow"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// SessionStore persists checkout sessions between step submissions
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type redisSessionStore struct {
	cache cache.Service
	ttl   time.Duration
}

// NewRedisSessionStore keeps sessions in Redis for ttl per save, so the
// clock restarts on every step submission.
func NewRedisSessionStore(cacheService cache.Service, ttl time.Duration) SessionStore {
	return &redisSessionStore{cache: cacheService, ttl: ttl}
}

func (s *redisSessionStore) Save(ctx context.Context, session *Session) error {
	session.UpdatedAt = time.Now()
	key := constants.BuildCheckoutSessionKey(session.ID)
	if err := s.cache.Set(ctx, key, session, s.ttl); err != nil {
		return fmt.Errorf("failed to save checkout session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Get(ctx context.Context, id string) (*Session, error) {
	var session Session
	key := constants.BuildCheckoutSessionKey(id)
	if err := s.cache.Get(ctx, key, &session); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load checkout session: %w", err)
	}
	return &session, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, constants.BuildCheckoutSessionKey(id))
}
