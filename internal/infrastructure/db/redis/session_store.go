package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tl2/clientes-admin/internal/session"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps session values as a JSON document per key, relying on
// the Redis TTL for expiry.
// Key format: session:<id>
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Load(ctx context.Context, id string) (map[string]string, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis session load: %w", err)
	}

	values := make(map[string]string)
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("redis session decode: %w", err)
	}
	return values, nil
}

func (s *SessionStore) Save(ctx context.Context, id string, values map[string]string, ttl time.Duration) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("redis session encode: %w", err)
	}
	if err := s.client.Set(ctx, s.key(id), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis session save: %w", err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis session delete: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SessionStore) key(id string) string {
	return sessionKeyPrefix + id
}

var _ session.Store = (*SessionStore)(nil)
