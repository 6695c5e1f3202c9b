package prefs

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"tourflo/internal/shared/constants"
)

// Store persists preference flags. It is injected explicitly, nothing in
// this package reaches for a global client.
type Store interface {
	Load(ctx context.Context, userID string) (Preferences, bool, error)
	Save(ctx context.Context, userID string, prefs Preferences) error
	SetFields(ctx context.Context, userID string, fields map[string]interface{}) error
	Clear(ctx context.Context, userID string) error
}

type redisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

// Load returns the stored flags and whether any were found. A missing
// hash is not an error, new users simply have no preferences yet.
func (s *redisStore) Load(ctx context.Context, userID string) (Preferences, bool, error) {
	fields, err := s.client.HGetAll(ctx, constants.BuildUserPrefsKey(userID)).Result()
	if err != nil {
		return Preferences{}, false, fmt.Errorf("failed to load preferences for user %s: %w", userID, err)
	}
	if len(fields) == 0 {
		return Preferences{}, false, nil
	}
	return fromHash(fields), true, nil
}

func (s *redisStore) Save(ctx context.Context, userID string, prefs Preferences) error {
	if err := s.client.HSet(ctx, constants.BuildUserPrefsKey(userID), prefs.toHash()).Err(); err != nil {
		return fmt.Errorf("failed to save preferences for user %s: %w", userID, err)
	}
	return nil
}

// SetFields writes only the given hash fields, leaving the rest untouched
func (s *redisStore) SetFields(ctx context.Context, userID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	if err := s.client.HSet(ctx, constants.BuildUserPrefsKey(userID), fields).Err(); err != nil {
		return fmt.Errorf("failed to update preferences for user %s: %w", userID, err)
	}
	return nil
}

func (s *redisStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, constants.BuildUserPrefsKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear preferences for user %s: %w", userID, err)
	}
	return nil
}
